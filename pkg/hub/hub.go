// Package hub implements the process-wide broadcast channel of the relay.
//
// A Hub keeps the last Capacity messages in a ring indexed by a monotonically
// increasing sequence number. Subscribers are plain cursors into that ring,
// so the Hub never tracks who is listening and a publisher never waits for a
// slow reader. A reader that falls more than Capacity messages behind loses
// the oldest ones and is told how many through a *LaggedError.
package hub

import (
	"context"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

const DefaultCapacity = 100

type Config struct {
	Capacity int
	Logger   log.FieldLogger
}

func DefaultConfig() Config {
	return Config{
		Capacity: DefaultCapacity,
		Logger:   log.StandardLogger(),
	}
}

type Hub struct {
	mu       sync.Mutex
	ring     []Message
	tail     uint64 // sequence number of the newest message, 0 before the first publish
	notify   chan struct{}
	closed   bool
	capacity uint64

	published   atomic.Uint64
	dropped     atomic.Uint64
	subscribers atomic.Int64

	logger log.FieldLogger
}

func New(cfg Config) *Hub {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Logger == nil {
		cfg.Logger = log.StandardLogger()
	}

	return &Hub{
		ring:     make([]Message, cfg.Capacity),
		notify:   make(chan struct{}),
		capacity: uint64(cfg.Capacity),
		logger:   cfg.Logger.WithField("component", "hub"),
	}
}

// Publish appends msg to the ring and wakes every waiting subscriber. It
// never blocks on subscribers and only fails once the Hub is closed.
func (h *Hub) Publish(msg Message) (uint64, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return 0, ErrClosed
	}

	h.tail++
	seq := h.tail
	h.ring[(seq-1)%h.capacity] = msg

	wake := h.notify
	h.notify = make(chan struct{})
	h.mu.Unlock()

	close(wake)
	h.published.Add(1)
	return seq, nil
}

// Subscribe returns a subscription positioned after the newest message, so
// only messages published from now on are received.
func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	sub := &Subscription{hub: h, next: h.tail + 1}
	h.mu.Unlock()

	n := h.subscribers.Add(1)
	h.logger.WithField("subscribers", n).Debug("subscription opened")
	return sub
}

// Close shuts the Hub down. Pending messages can still be drained by
// subscribers; after that Recv returns ErrClosed. Close is idempotent.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	close(h.notify)
	h.mu.Unlock()

	h.logger.WithField("published", h.published.Load()).Info("hub closed")
}

func (h *Hub) Capacity() int {
	return int(h.capacity)
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	seq := h.tail
	h.mu.Unlock()

	return Stats{
		Sequence:    seq,
		Capacity:    int(h.capacity),
		Published:   h.published.Load(),
		Dropped:     h.dropped.Load(),
		Subscribers: h.subscribers.Load(),
	}
}

// Subscription is a private read cursor into a Hub. It must be used by one
// goroutine at a time.
type Subscription struct {
	hub    *Hub
	next   uint64 // sequence number of the next message to read
	closed bool
}

// Recv blocks until the next message is available. It returns a *LaggedError
// when messages were dropped for this subscription, ErrClosed when the Hub
// is closed and drained, or ctx.Err() when ctx ends first.
func (s *Subscription) Recv(ctx context.Context) (Message, error) {
	h := s.hub

	for {
		h.mu.Lock()
		if s.closed {
			h.mu.Unlock()
			return Message{}, ErrClosed
		}

		if s.next <= h.tail {
			oldest := uint64(1)
			if h.tail > h.capacity {
				oldest = h.tail - h.capacity + 1
			}

			if s.next < oldest {
				missed := oldest - s.next
				s.next = oldest
				h.mu.Unlock()

				h.dropped.Add(missed)
				return Message{}, &LaggedError{Missed: missed}
			}

			msg := h.ring[(s.next-1)%h.capacity]
			s.next++
			h.mu.Unlock()
			return msg, nil
		}

		if h.closed {
			h.mu.Unlock()
			return Message{}, ErrClosed
		}
		wait := h.notify
		h.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return Message{}, ctx.Err()
		}
	}
}

// Close releases the subscription. Further Recv calls return ErrClosed.
func (s *Subscription) Close() {
	h := s.hub

	h.mu.Lock()
	if s.closed {
		h.mu.Unlock()
		return
	}
	s.closed = true
	h.mu.Unlock()

	n := h.subscribers.Add(-1)
	h.logger.WithField("subscribers", n).Debug("subscription closed")
}

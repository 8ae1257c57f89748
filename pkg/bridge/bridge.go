// Package bridge links the local Hub to other relay instances through a
// fanout broker exchange.
//
// Messages accepted locally are stamped with this instance's id and
// forwarded. Messages arriving from the exchange are published into the
// local Hub with their origin kept, which keeps them from being forwarded
// again. The exchange also hands an instance its own messages back; those
// are dropped by comparing the origin.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"relay/pkg/hub"
)

// Exchange is the broker side of the bridge. *manager.RabbitMQClient
// implements it.
type Exchange interface {
	Publish(ctx context.Context, body []byte) error
	Consume() (<-chan []byte, error)
}

type Bridge struct {
	hub      *hub.Hub
	exchange Exchange
	instance string
	logger   log.FieldLogger
}

func New(h *hub.Hub, exchange Exchange, logger log.FieldLogger) *Bridge {
	if logger == nil {
		logger = log.StandardLogger()
	}
	instance := uuid.NewString()

	return &Bridge{
		hub:      h,
		exchange: exchange,
		instance: instance,
		logger: logger.WithFields(log.Fields{
			"component": "bridge",
			"instance":  instance,
		}),
	}
}

// Instance is the origin id stamped on forwarded messages.
func (b *Bridge) Instance() string {
	return b.instance
}

// Run forwards and injects until ctx ends, the Hub closes or the exchange
// stops delivering. It returns nil on those ordinary endings.
func (b *Bridge) Run(ctx context.Context) error {
	deliveries, err := b.exchange.Consume()
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	sub := b.hub.Subscribe()
	defer sub.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		b.forward(ctx, sub)
	}()

	b.inject(ctx, deliveries)
	cancel()
	wg.Wait()

	b.logger.Info("bridge stopped")
	return nil
}

func (b *Bridge) forward(ctx context.Context, sub *hub.Subscription) {
	for {
		msg, err := sub.Recv(ctx)
		if err != nil {
			var lagged *hub.LaggedError
			switch {
			case errors.As(err, &lagged):
				b.logger.WithField("missed", lagged.Missed).Warn("bridge lagged behind the hub")
				continue
			case errors.Is(err, hub.ErrClosed):
				b.logger.Debug("hub closed, forwarding stopped")
			}
			return
		}

		if !msg.IsLocal() {
			continue
		}

		msg.Origin = b.instance
		body, err := json.Marshal(msg)
		if err != nil {
			b.logger.WithError(err).Error("failed to encode message")
			continue
		}

		if err := b.exchange.Publish(ctx, body); err != nil {
			if ctx.Err() != nil {
				return
			}
			b.logger.WithError(err).WithField("sender", msg.Sender).Warn("failed to forward message")
		}
	}
}

func (b *Bridge) inject(ctx context.Context, deliveries <-chan []byte) {
	for {
		var body []byte
		var ok bool

		select {
		case <-ctx.Done():
			return
		case body, ok = <-deliveries:
			if !ok {
				b.logger.Warn("exchange deliveries closed")
				return
			}
		}

		var msg hub.Message
		if err := json.Unmarshal(body, &msg); err != nil {
			b.logger.WithError(err).Warn("dropping malformed delivery")
			continue
		}
		if msg.Origin == "" || msg.Origin == b.instance {
			continue
		}

		// Remote session ids mean nothing here.
		msg.Session = ""
		if msg.Sender == "" {
			msg.Sender = hub.UnknownSender
		}

		if _, err := b.hub.Publish(msg); err != nil {
			b.logger.WithError(err).Debug("hub rejected remote message")
			return
		}
		b.logger.WithFields(log.Fields{
			"origin": msg.Origin,
			"sender": msg.Sender,
		}).Debug("injected remote message")
	}
}

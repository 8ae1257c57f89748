package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"

	pb "relay/pkg/proto"
)

const (
	warmupText     = "bench warmup"
	warmupInterval = 50 * time.Millisecond
	replyPrefix    = "Reply: "
)

type BenchOptions struct {
	Messages int
	// Idle ends the receive side once no reply arrived for that long.
	Idle time.Duration
	// Progress receives the progress bar. Nil disables it.
	Progress io.Writer
}

type BenchResult struct {
	Sent     int
	Received int
	Elapsed  time.Duration
}

// Lost is the number of messages the receiver never saw, usually because it
// lagged behind the hub.
func (r BenchResult) Lost() int {
	return r.Sent - r.Received
}

func (r BenchResult) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Received) / r.Elapsed.Seconds()
}

// Bench opens a receiving session and a publish-only session on the same
// connection, relays opts.Messages messages through the server and counts
// how many come back.
func (c *Client) Bench(ctx context.Context, opts BenchOptions) (BenchResult, error) {
	if opts.Messages <= 0 {
		return BenchResult{}, errors.New("bench needs at least one message")
	}
	if opts.Idle <= 0 {
		opts.Idle = 2 * time.Second
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	receiver, err := c.openChat(ctx, false)
	if err != nil {
		return BenchResult{}, fmt.Errorf("could not open receiver: %w", err)
	}
	publisher, err := c.openChat(ctx, true)
	if err != nil {
		return BenchResult{}, fmt.Errorf("could not open publisher: %w", err)
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(opts.Messages,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("relaying"),
			progressbar.OptionShowCount(),
		)
	}

	ready := make(chan struct{})
	replies := make(chan struct{}, opts.Messages)
	go func() {
		defer close(replies)
		warm := false
		for {
			reply, err := receiver.Recv()
			if err != nil {
				return
			}
			if reply.GetName() != c.name {
				continue
			}
			if reply.GetMessage() == replyPrefix+warmupText {
				if !warm {
					warm = true
					close(ready)
				}
				continue
			}
			replies <- struct{}{}
		}
	}()

	if err := warmUp(ctx, publisher, ready); err != nil {
		return BenchResult{}, err
	}

	start := time.Now()
	result := BenchResult{}
	for i := 0; i < opts.Messages; i++ {
		if err := publisher.Send(&pb.ChatRequest{Message: fmt.Sprintf("bench %d", i)}); err != nil {
			return result, fmt.Errorf("send failed after %d messages: %w", i, err)
		}
		result.Sent++
	}
	if err := publisher.CloseSend(); err != nil {
		log.Debugf("close send failed: %v", err)
	}

	idle := time.NewTimer(opts.Idle)
	defer idle.Stop()

loop:
	for result.Received < result.Sent {
		select {
		case _, ok := <-replies:
			if !ok {
				break loop
			}
			result.Received++
			if bar != nil {
				_ = bar.Add(1)
			}
			idle.Reset(opts.Idle)
		case <-idle.C:
			break loop
		case <-ctx.Done():
			break loop
		}
	}
	result.Elapsed = time.Since(start)

	if bar != nil {
		_ = bar.Finish()
	}
	return result, nil
}

// warmUp publishes probe messages until the receiver has seen one, which
// means its subscription is live.
func warmUp(ctx context.Context, publisher pb.Greeter_ChatClient, ready <-chan struct{}) error {
	ticker := time.NewTicker(warmupInterval)
	defer ticker.Stop()

	for {
		if err := publisher.Send(&pb.ChatRequest{Message: warmupText}); err != nil {
			return fmt.Errorf("warmup failed: %w", err)
		}
		select {
		case <-ready:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

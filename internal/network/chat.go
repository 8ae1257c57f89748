package network

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	pb "relay/pkg/proto"
)

type ChatOptions struct {
	// PublishOnly opens the session without a fan-out.
	PublishOnly bool
	// Limit stops the chat after that many replies. Zero means until the
	// server ends the stream or ctx is done.
	Limit int
}

// DemoLines returns "Hello 0" through "Hello n-1", one per line.
func DemoLines(n int) io.Reader {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "Hello %d\n", i)
	}
	return strings.NewReader(b.String())
}

func (c *Client) openChat(ctx context.Context, publishOnly bool) (pb.Greeter_ChatClient, error) {
	md := metadata.Pairs("name", c.name)
	if publishOnly {
		md.Append("mode", "publish-only")
	}
	return c.greeter.Chat(metadata.NewOutgoingContext(ctx, md))
}

// Chat sends every non-empty line of in as a message and writes every reply
// to out as "<name>: <message>". The send side is half-closed once in is
// exhausted; replies keep arriving until the server ends the stream.
func (c *Client) Chat(ctx context.Context, in io.Reader, out io.Writer, opts ChatOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := c.openChat(ctx, opts.PublishOnly)
	if err != nil {
		return fmt.Errorf("could not open chat stream: %w", err)
	}

	sendErr := make(chan error, 1)
	go func() {
		sendErr <- sendLines(stream, in)
	}()

	received := 0
	for opts.Limit == 0 || received < opts.Limit {
		reply, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return nil
			}
			return fmt.Errorf("chat stream failed: %w", err)
		}

		received++
		if _, err := fmt.Fprintf(out, "%s: %s\n", reply.GetName(), reply.GetMessage()); err != nil {
			return err
		}
	}

	// The sender may still be blocked reading in; it ends with the stream.
	select {
	case err := <-sendErr:
		if err != nil && !errors.Is(err, io.EOF) && status.Code(err) != codes.Canceled {
			return err
		}
	default:
	}
	return nil
}

func sendLines(stream pb.Greeter_ChatClient, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := stream.Send(&pb.ChatRequest{Message: line}); err != nil {
			log.Debugf("failed to send chat message: %v", err)
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return stream.CloseSend()
}

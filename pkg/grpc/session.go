package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"relay/pkg/hub"
	pb "relay/pkg/proto"
)

const (
	// MetadataName carries the client's display name on a Chat call.
	MetadataName = "name"
	// MetadataMode selects the session mode; see ModePublishOnly.
	MetadataMode = "mode"
	// ModePublishOnly sessions only publish. They get no Hub subscription and
	// the call ends as soon as the client closes its send side.
	ModePublishOnly = "publish-only"

	replyPrefix = "Reply: "
)

var (
	ErrStreamRead  = errors.New("chat stream read failed")
	ErrStreamWrite = errors.New("chat stream write failed")
)

type session struct {
	id          string
	name        string
	publishOnly bool

	hub            *hub.Hub
	filterSelfEcho bool
	logger         log.FieldLogger
}

// Chat binds one client stream to an ingestion goroutine (stream -> Hub) and
// a fan-out loop (Hub -> stream) running in the handler goroutine.
func (s *GreeterServer) Chat(stream pb.Greeter_ChatServer) error {
	sess := s.newSession(stream.Context())
	return sess.run(stream, &s.ingestors)
}

func (s *GreeterServer) newSession(ctx context.Context) *session {
	name := firstMetadata(ctx, MetadataName)
	if name == "" {
		name = hub.UnknownSender
	}
	id := uuid.Must(uuid.NewV7()).String()

	return &session{
		id:             id,
		name:           name,
		publishOnly:    firstMetadata(ctx, MetadataMode) == ModePublishOnly,
		hub:            s.hub,
		filterSelfEcho: s.filterSelfEcho,
		logger: s.logger.WithFields(log.Fields{
			"session": id,
			"name":    name,
		}),
	}
}

func firstMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

func (sess *session) run(stream pb.Greeter_ChatServer, ingestors *sync.WaitGroup) error {
	sess.logger.Infof("%s has connected", sess.name)

	// Subscribe before reading anything so the client sees its own first message.
	var sub *hub.Subscription
	if !sess.publishOnly {
		sub = sess.hub.Subscribe()
		defer sub.Close()
	}

	// A failed inbound side cancels the fan-out with the read error as cause.
	ctx, cancel := context.WithCancelCause(stream.Context())
	defer cancel(nil)

	var inboundErr error
	ingested := make(chan struct{})
	ingestors.Add(1)
	go func() {
		defer ingestors.Done()
		defer close(ingested)

		inboundErr = sess.ingest(stream)
		if inboundErr != nil {
			cancel(inboundErr)
		}
		sess.logger.Infof("%s is out", sess.name)
	}()

	if sess.publishOnly {
		<-ingested
		return inboundErr
	}

	// Returning ends the RPC, which unblocks a pending Recv in ingest.
	return sess.fanOut(ctx, stream, sub)
}

// ingest drains the inbound stream into the Hub. A graceful half-close
// returns nil and leaves the fan-out running.
func (sess *session) ingest(stream pb.Greeter_ChatServer) error {
	for {
		req, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			sess.logger.Debug("inbound stream closed by client")
			return nil
		}
		if err != nil {
			if status.Code(err) == codes.Canceled || errors.Is(err, context.Canceled) {
				sess.logger.WithError(err).Debug("inbound stream cancelled")
			} else {
				sess.logger.WithError(err).Warn("inbound stream failed")
			}
			return fmt.Errorf("%w: %w", ErrStreamRead, err)
		}

		sender := req.GetName()
		if sender == "" {
			sender = sess.name
		}
		msg := hub.NewMessage(sender, req.GetMessage()).FromSession(sess.id)

		if _, err := sess.hub.Publish(msg); err != nil {
			sess.logger.WithError(err).Error("failed to publish chat message")
			return status.Errorf(codes.Internal, "failed to publish chat message: %v", err)
		}
	}
}

// fanOut forwards every Hub message to the client until the Hub closes, the
// client goes away or ingestion fails.
func (sess *session) fanOut(ctx context.Context, stream pb.Greeter_ChatServer, sub *hub.Subscription) error {
	for {
		msg, err := sub.Recv(ctx)
		if err != nil {
			var lagged *hub.LaggedError
			switch {
			case errors.As(err, &lagged):
				sess.logger.WithField("missed", lagged.Missed).Warn("subscriber lagged, messages dropped")
				continue
			case errors.Is(err, hub.ErrClosed):
				sess.logger.Info("hub closed, ending chat stream")
				return nil
			default:
				sess.logger.WithError(err).Debug("outbound stream done")
				if cause := context.Cause(ctx); cause != nil && cause != err {
					return cause
				}
				return status.FromContextError(err).Err()
			}
		}

		if sess.filterSelfEcho && msg.Session == sess.id {
			continue
		}

		sess.logger.Debugf("%s: %s", msg.Sender, msg.Text)

		reply := &pb.ChatReply{
			Name:    msg.Sender,
			Message: replyPrefix + msg.Text,
		}
		if err := stream.Send(reply); err != nil {
			sess.logger.WithError(err).Debug("outbound stream failed")
			return fmt.Errorf("%w: %w", ErrStreamWrite, err)
		}
	}
}

package rpc

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"relay/pkg/hub"
	pb "relay/pkg/proto"
)

const directMailAck = "Hello"

type Option func(*GreeterServer)

func WithLogger(logger log.FieldLogger) Option {
	return func(s *GreeterServer) { s.logger = logger }
}

// WithSelfEchoFilter stops a Chat session from receiving the messages it
// published itself. Direct mail and remote messages are never filtered.
func WithSelfEchoFilter(enabled bool) Option {
	return func(s *GreeterServer) { s.filterSelfEcho = enabled }
}

// GreeterServer implements helloworld.Greeter on top of a shared Hub.
type GreeterServer struct {
	pb.UnimplementedGreeterServer

	hub            *hub.Hub
	filterSelfEcho bool
	logger         log.FieldLogger

	// ingestion goroutines still running, possibly after their handler returned
	ingestors sync.WaitGroup
}

func NewGreeterServer(h *hub.Hub, opts ...Option) *GreeterServer {
	s := &GreeterServer{
		hub:    h,
		logger: log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("component", "greeter")
	return s
}

func (s *GreeterServer) SayHello(ctx context.Context, req *pb.HelloRequest) (*pb.HelloReply, error) {
	s.logger.WithField("name", req.GetName()).Info("got a hello request")

	return &pb.HelloReply{
		Message: fmt.Sprintf("Hello %s!", req.GetName()),
	}, nil
}

// DirectMail publishes one message into the Hub without a Chat stream.
func (s *GreeterServer) DirectMail(ctx context.Context, req *pb.DirectMailRequest) (*pb.DirectMailReply, error) {
	if req.GetName() == "" || req.GetMessage() == "" {
		return nil, status.Error(codes.InvalidArgument, "name and message are required")
	}

	seq, err := s.hub.Publish(hub.NewMessage(req.GetName(), req.GetMessage()))
	if err != nil {
		s.logger.WithError(err).WithField("name", req.GetName()).Error("failed to publish direct mail")
		return nil, status.Errorf(codes.Internal, "failed to publish direct mail: %v", err)
	}

	s.logger.WithFields(log.Fields{
		"name": req.GetName(),
		"seq":  seq,
	}).Debug("direct mail published")

	return &pb.DirectMailReply{Message: directMailAck}, nil
}

// Wait blocks until every ingestion goroutine has ended.
func (s *GreeterServer) Wait() {
	s.ingestors.Wait()
}

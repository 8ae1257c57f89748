package rpc

import (
	"net"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	pb "relay/pkg/proto"
)

// Server is the gRPC server exposing the Greeter service and the standard
// health service.
type Server struct {
	grpc    *grpc.Server
	health  *health.Server
	greeter *GreeterServer
	logger  log.FieldLogger
}

func NewServer(greeter *GreeterServer, opts ...grpc.ServerOption) *Server {
	logger := greeter.logger.WithField("component", "server")

	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			UnaryRecoveryInterceptor(logger),
			UnaryLoggingInterceptor(logger),
		),
		grpc.ChainStreamInterceptor(
			StreamRecoveryInterceptor(logger),
			StreamLoggingInterceptor(logger),
		),
	}, opts...)

	s := &Server{
		grpc:    grpc.NewServer(opts...),
		health:  health.NewServer(),
		greeter: greeter,
		logger:  logger,
	}

	pb.RegisterGreeterServer(s.grpc, greeter)
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus(pb.Greeter_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return s
}

func (s *Server) Serve(lis net.Listener) error {
	s.logger.WithField("addr", lis.Addr().String()).Info("grpc server listening")
	return s.grpc.Serve(lis)
}

// Shutdown reports NOT_SERVING, closes the Hub so open Chat streams end, and
// waits up to timeout for in-flight calls before forcing the server down.
func (s *Server) Shutdown(timeout time.Duration) {
	s.health.Shutdown()
	s.greeter.hub.Close()

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("grpc server stopped gracefully")
	case <-time.After(timeout):
		s.logger.WithField("timeout", timeout).Warn("graceful stop timed out, forcing stop")
		s.grpc.Stop()
		<-done
	}

	s.greeter.Wait()
}

package rpc

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

func callFields(ctx context.Context, method string, start time.Time, err error) log.Fields {
	fields := log.Fields{
		"method":   method,
		"code":     status.Code(err).String(),
		"duration": time.Since(start).Round(time.Microsecond),
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		fields["peer"] = p.Addr.String()
	}
	return fields
}

func UnaryLoggingInterceptor(logger log.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		entry := logger.WithFields(callFields(ctx, info.FullMethod, start, err))
		if err != nil {
			entry.WithError(err).Warn("unary call failed")
		} else {
			entry.Debug("unary call finished")
		}
		return resp, err
	}
}

func StreamLoggingInterceptor(logger log.FieldLogger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)

		entry := logger.WithFields(callFields(ss.Context(), info.FullMethod, start, err))
		switch status.Code(err) {
		case codes.OK, codes.Canceled:
			entry.Info("stream finished")
		default:
			entry.WithError(err).Warn("stream failed")
		}
		return err
	}
}

// UnaryRecoveryInterceptor turns a handler panic into codes.Internal.
func UnaryRecoveryInterceptor(logger log.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(log.Fields{
					"method": info.FullMethod,
					"panic":  r,
					"stack":  string(debug.Stack()),
				}).Error("recovered from panic")
				err = status.Errorf(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

// StreamRecoveryInterceptor turns a handler panic into codes.Internal.
func StreamRecoveryInterceptor(logger log.FieldLogger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(log.Fields{
					"method": info.FullMethod,
					"panic":  r,
					"stack":  string(debug.Stack()),
				}).Error("recovered from panic")
				err = status.Errorf(codes.Internal, "internal error")
			}
		}()
		return handler(srv, ss)
	}
}

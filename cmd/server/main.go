package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"relay/pkg/bridge"
	"relay/pkg/config"
	rpc "relay/pkg/grpc"
	"relay/pkg/hub"
	"relay/pkg/logger"
	"relay/pkg/manager"
)

var configFile = flag.String("config", "", "Path to a JSON config file. Environment variables prefixed with RELAY_ override it.")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logger.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chatHub := hub.New(hub.Config{Capacity: cfg.Hub.Capacity, Logger: log.StandardLogger()})

	if cfg.Bridge.Enabled {
		rmqClient, err := manager.CreateRabbitMQClient(cfg.Bridge.AMQPURI, cfg.Bridge.Exchange, log.StandardLogger())
		if err != nil {
			log.Fatalf("failed to start federation bridge: %v", err)
		}
		defer func() {
			if err := rmqClient.Close(); err != nil {
				log.Warnf("failed to close rabbitmq client: %v", err)
			}
		}()

		fed := bridge.New(chatHub, rmqClient, log.StandardLogger())
		go func() {
			if err := fed.Run(ctx); err != nil {
				log.Errorf("federation bridge stopped: %v", err)
			}
		}()
		log.Infof("federation bridge enabled on exchange %s as instance %s", cfg.Bridge.Exchange, fed.Instance())
	}

	greeter := rpc.NewGreeterServer(chatHub,
		rpc.WithLogger(log.StandardLogger()),
		rpc.WithSelfEchoFilter(cfg.Hub.FilterSelfEcho),
	)

	var opts []grpc.ServerOption
	if cfg.Server.MaxMessageSize > 0 {
		opts = append(opts,
			grpc.MaxRecvMsgSize(cfg.Server.MaxMessageSize),
			grpc.MaxSendMsgSize(cfg.Server.MaxMessageSize),
		)
	}
	server := rpc.NewServer(greeter, opts...)

	lis, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(lis)
	}()
	log.Infof("relay listening on %s (hub capacity %d)", lis.Addr(), cfg.Hub.Capacity)

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Errorf("failed to serve: %v", err)
		}
	}

	server.Shutdown(cfg.Server.ShutdownTimeout.Std())
	stats := chatHub.Stats()
	log.Infof("relay stopped: %d published, %d dropped for lagging subscribers", stats.Published, stats.Dropped)
}

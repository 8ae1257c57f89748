package network

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	pb "relay/pkg/proto"
)

const (
	DefaultServerAddr = "[::1]:50051"
	GreeterService    = "helloworld.Greeter"
)

// Client wraps one connection to a relay server.
type Client struct {
	conn    *grpc.ClientConn
	greeter pb.GreeterClient
	health  healthpb.HealthClient
	name    string
}

// Dial connects to addr without transport security. name is announced on
// every chat session opened by the client.
func Dial(addr, name string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	log.Debugf("client '%s' connecting to gRPC server at %s", name, addr)

	return &Client{
		conn:    conn,
		greeter: pb.NewGreeterClient(conn),
		health:  healthpb.NewHealthClient(conn),
		name:    name,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) Hello(ctx context.Context, name string) (string, error) {
	resp, err := c.greeter.SayHello(ctx, &pb.HelloRequest{Name: name})
	if err != nil {
		return "", err
	}
	return resp.GetMessage(), nil
}

// Mail injects one message through the direct-mail gateway.
func (c *Client) Mail(ctx context.Context, name, text string) (string, error) {
	resp, err := c.greeter.DirectMail(ctx, &pb.DirectMailRequest{Name: name, Message: text})
	if err != nil {
		return "", err
	}
	return resp.GetMessage(), nil
}

// Health asks the server for the serving status of service. An empty
// service checks the server as a whole.
func (c *Client) Health(ctx context.Context, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

package network

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	rpc "relay/pkg/grpc"
	"relay/pkg/hub"
)

const waitFor = 2 * time.Second

func startRelay(t *testing.T, capacity int) (*hub.Hub, *Client) {
	t.Helper()

	logger := log.New()
	logger.SetOutput(io.Discard)

	h := hub.New(hub.Config{Capacity: capacity, Logger: logger})
	server := rpc.NewServer(rpc.NewGreeterServer(h, rpc.WithLogger(logger)))

	lis := bufconn.Listen(1 << 20)
	go func() {
		_ = server.Serve(lis)
	}()

	client, err := Dial("passthrough:///bufnet", "alice",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
		server.Shutdown(waitFor)
	})
	return h, client
}

func TestClient_Hello(t *testing.T) {
	_, client := startRelay(t, 16)

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	msg, err := client.Hello(ctx, "Tonic")
	require.NoError(t, err)
	assert.Equal(t, "Hello Tonic!", msg)
}

func TestClient_Mail(t *testing.T) {
	h, client := startRelay(t, 16)
	sub := h.Subscribe()
	defer sub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	ack, err := client.Mail(ctx, "x", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello", ack)

	msg, err := sub.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x", msg.Sender)
	assert.Equal(t, "hi", msg.Text)
}

func TestClient_Health(t *testing.T) {
	_, client := startRelay(t, 16)

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	st, err := client.Health(ctx, GreeterService)
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, st)
}

func TestClient_ChatDemo(t *testing.T) {
	_, client := startRelay(t, 16)

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	var out bytes.Buffer
	err := client.Chat(ctx, DemoLines(10), &out, ChatOptions{Limit: 10})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "alice: Reply: Hello 0", lines[0])
	assert.Equal(t, "alice: Reply: Hello 9", lines[9])
}

func TestClient_ChatPublishOnly(t *testing.T) {
	h, client := startRelay(t, 16)
	sub := h.Subscribe()
	defer sub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	var out bytes.Buffer
	err := client.Chat(ctx, strings.NewReader("one\n\n two \n"), &out, ChatOptions{PublishOnly: true})
	require.NoError(t, err)
	assert.Empty(t, out.String())

	for _, want := range []string{"one", "two"} {
		msg, err := sub.Recv(ctx)
		require.NoError(t, err)
		assert.Equal(t, "alice", msg.Sender)
		assert.Equal(t, want, msg.Text)
	}
}

func TestClient_ChatEndsWithContext(t *testing.T) {
	_, client := startRelay(t, 16)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := client.Chat(ctx, strings.NewReader(""), io.Discard, ChatOptions{})
	assert.NoError(t, err)
}

func TestClient_Bench(t *testing.T) {
	_, client := startRelay(t, 256)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := client.Bench(ctx, BenchOptions{Messages: 50, Idle: time.Second, Progress: io.Discard})
	require.NoError(t, err)
	assert.Equal(t, 50, result.Sent)
	assert.Equal(t, 50, result.Received)
	assert.Zero(t, result.Lost())
	assert.Positive(t, result.Rate())
}

func TestClient_BenchNeedsMessages(t *testing.T) {
	_, client := startRelay(t, 16)

	_, err := client.Bench(context.Background(), BenchOptions{})
	assert.Error(t, err)
}

package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relay/pkg/hub"
)

type fakeExchange struct {
	mu         sync.Mutex
	published  [][]byte
	deliveries chan []byte
	consumeErr error
}

func newFakeExchange() *fakeExchange {
	return &fakeExchange{deliveries: make(chan []byte, 16)}
}

func (f *fakeExchange) Publish(_ context.Context, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, body)
	return nil
}

func (f *fakeExchange) Consume() (<-chan []byte, error) {
	if f.consumeErr != nil {
		return nil, f.consumeErr
	}
	return f.deliveries, nil
}

func (f *fakeExchange) sent() []hub.Message {
	f.mu.Lock()
	defer f.mu.Unlock()

	msgs := make([]hub.Message, 0, len(f.published))
	for _, body := range f.published {
		var msg hub.Message
		if err := json.Unmarshal(body, &msg); err == nil {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func quietLogger() *log.Logger {
	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	return logger
}

func startBridge(t *testing.T, h *hub.Hub, ex *fakeExchange) *Bridge {
	t.Helper()

	b := New(h, ex, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	// Run subscribes before anything can be forwarded.
	require.Eventually(t, func() bool { return h.Stats().Subscribers >= 1 }, time.Second, 5*time.Millisecond)

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Error("bridge did not stop")
		}
	})
	return b
}

func remote(origin, sender, text string) []byte {
	msg := hub.NewMessage(sender, text)
	msg.Origin = origin
	msg.Session = "remote-session"
	body, _ := json.Marshal(msg)
	return body
}

func TestBridge_ForwardsLocalMessages(t *testing.T) {
	h := hub.New(hub.Config{Capacity: 8, Logger: quietLogger()})
	ex := newFakeExchange()
	b := startBridge(t, h, ex)

	_, err := h.Publish(hub.NewMessage("alice", "hi").FromSession("s1"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(ex.sent()) == 1 }, time.Second, 5*time.Millisecond)
	msg := ex.sent()[0]
	assert.Equal(t, "alice", msg.Sender)
	assert.Equal(t, "hi", msg.Text)
	assert.Equal(t, b.Instance(), msg.Origin)
}

func TestBridge_InjectsRemoteMessages(t *testing.T) {
	h := hub.New(hub.Config{Capacity: 8, Logger: quietLogger()})
	ex := newFakeExchange()
	startBridge(t, h, ex)

	sub := h.Subscribe()
	defer sub.Close()

	ex.deliveries <- remote("other-instance", "bob", "from afar")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, err := sub.Recv(ctx)
	require.NoError(t, err)

	assert.Equal(t, "bob", msg.Sender)
	assert.Equal(t, "from afar", msg.Text)
	assert.Equal(t, "other-instance", msg.Origin)
	assert.Empty(t, msg.Session)
	assert.False(t, msg.IsLocal())
}

func TestBridge_NeverReforwardsRemoteMessages(t *testing.T) {
	h := hub.New(hub.Config{Capacity: 8, Logger: quietLogger()})
	ex := newFakeExchange()
	startBridge(t, h, ex)

	sub := h.Subscribe()
	defer sub.Close()

	ex.deliveries <- remote("other-instance", "bob", "remote")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := sub.Recv(ctx)
	require.NoError(t, err)

	_, err = h.Publish(hub.NewMessage("alice", "local"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(ex.sent()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	sent := ex.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "local", sent[0].Text)
}

func TestBridge_DropsOwnEcho(t *testing.T) {
	h := hub.New(hub.Config{Capacity: 8, Logger: quietLogger()})
	ex := newFakeExchange()
	b := startBridge(t, h, ex)

	sub := h.Subscribe()
	defer sub.Close()

	ex.deliveries <- remote(b.Instance(), "alice", "echo")
	ex.deliveries <- []byte("not json")
	ex.deliveries <- remote("other-instance", "bob", "after")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, err := sub.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, "after", msg.Text)
}

func TestBridge_StopsWhenHubCloses(t *testing.T) {
	h := hub.New(hub.Config{Capacity: 8, Logger: quietLogger()})
	ex := newFakeExchange()

	b := New(h, ex, quietLogger())
	done := make(chan error, 1)
	go func() { done <- b.Run(context.Background()) }()
	require.Eventually(t, func() bool { return h.Stats().Subscribers == 1 }, time.Second, 5*time.Millisecond)

	h.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("bridge did not stop after hub close")
	}
	assert.Equal(t, int64(0), h.Stats().Subscribers)
}

func TestBridge_ConsumeError(t *testing.T) {
	h := hub.New(hub.Config{Capacity: 8, Logger: quietLogger()})
	ex := newFakeExchange()
	ex.consumeErr = errors.New("broker down")

	err := New(h, ex, quietLogger()).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

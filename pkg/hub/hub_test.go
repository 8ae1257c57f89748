package hub_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relay/pkg/hub"
)

func newTestHub(t *testing.T, capacity int) *hub.Hub {
	t.Helper()

	logger := log.New()
	logger.SetOutput(io.Discard)

	h := hub.New(hub.Config{Capacity: capacity, Logger: logger})
	t.Cleanup(h.Close)
	return h
}

func recvTimeout(t *testing.T, sub *hub.Subscription) (hub.Message, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return sub.Recv(ctx)
}

func TestNew_DefaultCapacity(t *testing.T) {
	h := hub.New(hub.Config{})
	defer h.Close()

	assert.Equal(t, hub.DefaultCapacity, h.Capacity())
}

func TestPublish_AssignsIncreasingSequence(t *testing.T) {
	h := newTestHub(t, 4)

	for want := uint64(1); want <= 10; want++ {
		seq, err := h.Publish(hub.NewMessage("a", "x"))
		require.NoError(t, err)
		assert.Equal(t, want, seq)
	}

	assert.Equal(t, uint64(10), h.Stats().Sequence)
	assert.Equal(t, uint64(10), h.Stats().Published)
}

func TestPublish_WithoutSubscribersNeverBlocks(t *testing.T) {
	h := newTestHub(t, 8)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_, _ = h.Publish(hub.NewMessage("a", "x"))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked without subscribers")
	}
}

func TestSubscribe_ReceivesInOrder(t *testing.T) {
	h := newTestHub(t, 16)
	sub := h.Subscribe()
	defer sub.Close()

	for i := 0; i < 5; i++ {
		_, err := h.Publish(hub.NewMessage("a", fmt.Sprintf("m%d", i)))
		require.NoError(t, err)
	}

	for i := 0; i < 5; i++ {
		msg, err := recvTimeout(t, sub)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("m%d", i), msg.Text)
		assert.Equal(t, "a", msg.Sender)
	}
}

func TestSubscribe_FanOutToEverySubscriber(t *testing.T) {
	h := newTestHub(t, 100)
	b := h.Subscribe()
	c := h.Subscribe()
	defer b.Close()
	defer c.Close()

	const n = 50
	go func() {
		for i := 0; i < n; i++ {
			_, _ = h.Publish(hub.NewMessage("A", fmt.Sprintf("%d", i)))
		}
	}()

	for _, sub := range []*hub.Subscription{b, c} {
		for i := 0; i < n; i++ {
			msg, err := recvTimeout(t, sub)
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("%d", i), msg.Text)
		}
	}
}

func TestSubscribe_NoHistoryReplay(t *testing.T) {
	h := newTestHub(t, 100)

	for i := 0; i < 150; i++ {
		_, err := h.Publish(hub.NewMessage("A", fmt.Sprintf("old-%d", i)))
		require.NoError(t, err)
	}

	sub := h.Subscribe()
	defer sub.Close()

	_, err := h.Publish(hub.NewMessage("A", "new"))
	require.NoError(t, err)

	msg, err := recvTimeout(t, sub)
	require.NoError(t, err)
	assert.Equal(t, "new", msg.Text)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = sub.Recv(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRecv_Lagged(t *testing.T) {
	h := newTestHub(t, 4)
	sub := h.Subscribe()
	defer sub.Close()

	for i := 1; i <= 10; i++ {
		_, err := h.Publish(hub.NewMessage("a", fmt.Sprintf("%d", i)))
		require.NoError(t, err)
	}

	_, err := recvTimeout(t, sub)
	require.Error(t, err)
	assert.ErrorIs(t, err, hub.ErrLagged)

	var lagged *hub.LaggedError
	require.True(t, errors.As(err, &lagged))
	assert.Equal(t, uint64(6), lagged.Missed)

	for i := 7; i <= 10; i++ {
		msg, err := recvTimeout(t, sub)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%d", i), msg.Text)
	}

	assert.Equal(t, uint64(6), h.Stats().Dropped)
}

func TestRecv_LagOnlyAffectsSlowSubscriber(t *testing.T) {
	h := newTestHub(t, 4)
	slow := h.Subscribe()
	fast := h.Subscribe()
	defer slow.Close()
	defer fast.Close()

	for i := 0; i < 10; i++ {
		_, err := h.Publish(hub.NewMessage("a", fmt.Sprintf("%d", i)))
		require.NoError(t, err)

		msg, err := recvTimeout(t, fast)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%d", i), msg.Text)
	}

	_, err := recvTimeout(t, slow)
	assert.ErrorIs(t, err, hub.ErrLagged)
}

func TestRecv_WaitsForPublish(t *testing.T) {
	h := newTestHub(t, 4)
	sub := h.Subscribe()
	defer sub.Close()

	go func() {
		time.Sleep(20 * time.Millisecond)
		_, _ = h.Publish(hub.NewMessage("a", "late"))
	}()

	msg, err := recvTimeout(t, sub)
	require.NoError(t, err)
	assert.Equal(t, "late", msg.Text)
}

func TestRecv_ContextCancelled(t *testing.T) {
	h := newTestHub(t, 4)
	sub := h.Subscribe()
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sub.Recv(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClose_DrainsThenReportsClosed(t *testing.T) {
	h := newTestHub(t, 4)
	sub := h.Subscribe()
	defer sub.Close()

	_, err := h.Publish(hub.NewMessage("a", "last"))
	require.NoError(t, err)
	h.Close()

	msg, err := recvTimeout(t, sub)
	require.NoError(t, err)
	assert.Equal(t, "last", msg.Text)

	_, err = recvTimeout(t, sub)
	assert.ErrorIs(t, err, hub.ErrClosed)

	_, err = h.Publish(hub.NewMessage("a", "after"))
	assert.ErrorIs(t, err, hub.ErrClosed)
}

func TestClose_WakesWaitingReceivers(t *testing.T) {
	h := newTestHub(t, 4)
	sub := h.Subscribe()
	defer sub.Close()

	errs := make(chan error, 1)
	go func() {
		_, err := recvTimeout(t, sub)
		errs <- err
	}()

	time.Sleep(20 * time.Millisecond)
	h.Close()
	h.Close()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, hub.ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("receiver not woken by Close")
	}
}

func TestSubscription_Close(t *testing.T) {
	h := newTestHub(t, 4)
	sub := h.Subscribe()
	assert.Equal(t, int64(1), h.Stats().Subscribers)

	sub.Close()
	sub.Close()
	assert.Equal(t, int64(0), h.Stats().Subscribers)

	_, err := recvTimeout(t, sub)
	assert.ErrorIs(t, err, hub.ErrClosed)
}

func TestHub_ConcurrentPublishers(t *testing.T) {
	h := newTestHub(t, 1024)
	sub := h.Subscribe()
	defer sub.Close()

	const publishers, perPublisher = 8, 50

	var wg sync.WaitGroup
	for p := 0; p < publishers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perPublisher; i++ {
				_, _ = h.Publish(hub.NewMessage(fmt.Sprintf("p%d", p), fmt.Sprintf("%d", i)))
			}
		}(p)
	}
	wg.Wait()

	last := make(map[string]int)
	for i := 0; i < publishers*perPublisher; i++ {
		msg, err := recvTimeout(t, sub)
		require.NoError(t, err)

		var n int
		_, err = fmt.Sscanf(msg.Text, "%d", &n)
		require.NoError(t, err)

		if prev, ok := last[msg.Sender]; ok {
			assert.Greater(t, n, prev, "per-publisher order for %s", msg.Sender)
		}
		last[msg.Sender] = n
	}
	assert.Len(t, last, publishers)
}

func TestNewMessage_DefaultsSender(t *testing.T) {
	msg := hub.NewMessage("", "hi")
	assert.Equal(t, hub.UnknownSender, msg.Sender)
	assert.True(t, msg.IsLocal())
	assert.False(t, msg.Time.IsZero())

	tagged := msg.FromSession("s1")
	assert.Equal(t, "s1", tagged.Session)
	assert.Empty(t, msg.Session)
}

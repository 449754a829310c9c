package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	name string
	err  error

	mu   sync.Mutex
	sent []Notification
}

func (c *recordingChannel) Name() string { return c.name }

func (c *recordingChannel) Send(_ context.Context, n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, n)
	return c.err
}

func (c *recordingChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func newTestDispatcher(t *testing.T, channels ...Channel) *Dispatcher {
	t.Helper()
	d, err := NewDispatcher(Config{Workers: 2}, channels, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return d
}

func TestDispatcher_DeliverFansOut(t *testing.T) {
	ok := &recordingChannel{name: "email"}
	failing := &recordingChannel{name: "telegram", err: errors.New("bot blocked")}
	d := newTestDispatcher(t, ok, failing)
	defer d.Close(context.Background())

	err := d.Deliver(context.Background(), Notification{ID: "APP-1", Body: "hi"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "telegram: bot blocked")
	require.Equal(t, 1, ok.count())
	require.Equal(t, 1, failing.count())
	require.Equal(t, []string{"email", "telegram"}, d.Channels())
}

func TestDispatcher_HandleJobAndClose(t *testing.T) {
	ch := &recordingChannel{name: "log"}
	d := newTestDispatcher(t, ch)

	payload, err := json.Marshal(Notification{ID: "APP-2", Subject: "Новая заявка", Body: "text"})
	require.NoError(t, err)

	d.HandleJob(context.Background(), JobName, payload)
	d.HandleJob(context.Background(), "other.job", payload)
	d.HandleJob(context.Background(), JobName, json.RawMessage(`{broken`))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	require.Equal(t, 1, ch.count())
	require.Equal(t, "APP-2", ch.sent[0].ID)
}

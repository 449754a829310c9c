package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestImmediateQueue_DeliversDetachedJob(t *testing.T) {
	got := make(chan Job, 1)
	var ctxValue any
	var ctxErr error
	q := NewImmediateQueue(nil)
	q.SetHandler(func(ctx context.Context, job Job) {
		ctxValue = ctx.Value(ctxKey{})
		ctxErr = ctx.Err()
		got <- job
	})

	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "req-1"))
	require.NoError(t, q.Enqueue(ctx, "notify.send", map[string]string{"id": "APP-1"}))
	cancel()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer closeCancel()
	require.NoError(t, q.Close(closeCtx))

	job := <-got
	require.Equal(t, "notify.send", job.Name)
	require.NotEmpty(t, job.ID)
	require.False(t, job.EnqueuedAt.IsZero())
	require.Equal(t, "req-1", ctxValue)
	require.NoError(t, ctxErr)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(job.Payload, &payload))
	require.Equal(t, "APP-1", payload["id"])
}

func TestImmediateQueue_WithoutHandler(t *testing.T) {
	q := NewImmediateQueue(nil)
	require.NoError(t, q.Enqueue(context.Background(), "noop", nil))
	require.Error(t, q.Enqueue(context.Background(), "bad", make(chan int)))
}

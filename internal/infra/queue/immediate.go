package queue

import (
	"context"
	"sync"
)

// ImmediateQueue runs the handler in a goroutine on enqueue. Jobs are lost on
// restart; it is the fallback when Valkey is unavailable.
type ImmediateQueue struct {
	mu      sync.RWMutex
	handler Handler
	wg      sync.WaitGroup
}

// NewImmediateQueue constructs the queue.
func NewImmediateQueue(handler Handler) *ImmediateQueue {
	return &ImmediateQueue{handler: handler}
}

// SetHandler replaces the handler used for queued jobs.
func (q *ImmediateQueue) SetHandler(handler Handler) {
	q.mu.Lock()
	q.handler = handler
	q.mu.Unlock()
}

// Enqueue invokes the handler asynchronously. The job outlives the request
// context but keeps its values.
func (q *ImmediateQueue) Enqueue(ctx context.Context, name string, payload any) error {
	job, err := newJob(name, payload)
	if err != nil {
		return err
	}
	q.mu.RLock()
	handler := q.handler
	q.mu.RUnlock()
	if handler == nil {
		return nil
	}
	detached := context.WithoutCancel(ctx)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		handler(detached, job)
	}()
	return nil
}

// Close waits for running handlers or for ctx to end.
func (q *ImmediateQueue) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ HandlerQueue = (*ImmediateQueue)(nil)

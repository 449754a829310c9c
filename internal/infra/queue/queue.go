// Package queue delivers background jobs to a single handler, either in
// process or through a Valkey list shared by replicas.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Job is the envelope stored on the queue.
type Job struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// Handler executes one job. Errors are the handler's to log.
type Handler func(ctx context.Context, job Job)

// HandlerQueue is a job queue that delivers to a handler set after construction.
type HandlerQueue interface {
	Enqueue(ctx context.Context, name string, payload any) error
	SetHandler(handler Handler)
	Close(ctx context.Context) error
}

func newJob(name string, payload any) (Job, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Job{}, fmt.Errorf("encode %s payload: %w", name, err)
	}
	return Job{
		ID:         uuid.NewString(),
		Name:       name,
		Payload:    raw,
		EnqueuedAt: time.Now().UTC(),
	}, nil
}

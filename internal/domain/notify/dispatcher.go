package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yanqian/faqdesk/pkg/metrics"
)

const (
	defaultWorkers        = 4
	defaultChannelTimeout = 15 * time.Second
)

// Dispatcher fans notifications out to channels on a bounded worker pool.
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
	pool     *ants.Pool
	logger   *slog.Logger
	inflight sync.WaitGroup
}

// NewDispatcher builds a dispatcher. It must be closed to release the pool.
func NewDispatcher(cfg Config, channels []Channel, logger *slog.Logger) (*Dispatcher, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	timeout := cfg.ChannelTimeout
	if timeout <= 0 {
		timeout = defaultChannelTimeout
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create notify pool: %w", err)
	}
	return &Dispatcher{
		channels: channels,
		timeout:  timeout,
		pool:     pool,
		logger:   logger.With("component", "notify.dispatcher"),
	}, nil
}

// Channels lists the configured channel names.
func (d *Dispatcher) Channels() []string {
	names := make([]string, len(d.channels))
	for i, ch := range d.channels {
		names[i] = ch.Name()
	}
	return names
}

// Submit schedules delivery on the worker pool and returns immediately.
func (d *Dispatcher) Submit(n Notification) error {
	d.inflight.Add(1)
	err := d.pool.Submit(func() {
		defer d.inflight.Done()
		if err := d.Deliver(context.Background(), n); err != nil {
			d.logger.Warn("notification partially delivered", "id", n.ID, "error", err)
		}
	})
	if err != nil {
		d.inflight.Done()
		return fmt.Errorf("submit notification: %w", err)
	}
	return nil
}

// Deliver sends n to every channel concurrently and waits for all of them.
// A failing channel does not stop the others; all failures are joined.
func (d *Dispatcher) Deliver(ctx context.Context, n Notification) error {
	errs := make([]error, len(d.channels))
	var g errgroup.Group
	for i, ch := range d.channels {
		g.Go(func() error {
			sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()
			err := ch.Send(sendCtx, n)
			metrics.IncNotification(ch.Name(), err)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", ch.Name(), err)
				return nil
			}
			d.logger.Info("notification sent", "id", n.ID, "channel", ch.Name())
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// HandleJob decodes a queued notification and submits it for delivery.
func (d *Dispatcher) HandleJob(_ context.Context, name string, payload json.RawMessage) {
	if name != JobName {
		d.logger.Warn("unknown job ignored", "job", name)
		return
	}
	var n Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		d.logger.Error("notification payload invalid", "error", err)
		return
	}
	if err := d.Submit(n); err != nil {
		d.logger.Error("notification submit failed", "id", n.ID, "error", err)
	}
}

// Close waits for in-flight deliveries (bounded by ctx) and releases the pool.
func (d *Dispatcher) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()
	defer d.pool.Release()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

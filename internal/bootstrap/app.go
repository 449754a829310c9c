package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/faqdesk/internal/domain/notify"
	"github.com/yanqian/faqdesk/internal/infra/config"
	"github.com/yanqian/faqdesk/internal/infra/filewatch"
	"github.com/yanqian/faqdesk/internal/infra/queue"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates the HTTP server lifecycle and the background workers
// behind it.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	server     *http.Server
	jobs       queue.HandlerQueue
	dispatcher *notify.Dispatcher
	watcher    *filewatch.Watcher
}

// NewApp is used by Wire to build the runnable app. watcher may be nil.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, jobs queue.HandlerQueue, dispatcher *notify.Dispatcher, watcher *filewatch.Watcher) *App {
	return &App{
		cfg:        cfg,
		logger:     logger.With("component", "bootstrap"),
		server:     server,
		jobs:       jobs,
		dispatcher: dispatcher,
		watcher:    watcher,
	}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			a.logger.Warn("data file watcher unavailable", "error", err)
		} else {
			defer a.watcher.Stop()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address, "channels", a.dispatcher.Channels())
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(err, a.drain(shutdownCtx))
	}
}

// shutdown stops intake first so queued notifications can still drain.
func (a *App) shutdown(ctx context.Context) error {
	serverErr := a.server.Shutdown(ctx)
	return errors.Join(serverErr, a.drain(ctx))
}

func (a *App) drain(ctx context.Context) error {
	var errs []error
	if a.jobs != nil {
		if err := a.jobs.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.dispatcher != nil {
		if err := a.dispatcher.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

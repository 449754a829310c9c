package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yanqian/faqdesk/internal/infra/config"
	"github.com/yanqian/faqdesk/pkg/metrics"
)

type retryAttemptKey struct{}

// retryAttempt travels with each replayed request. Attempts after the first
// bypass the rate limiter, and the metrics middleware leaves the observation
// to withRetry so a client request is counted once with its final status.
type retryAttempt struct {
	number int
	route  string
}

func currentAttempt(ctx context.Context) *retryAttempt {
	attempt, _ := ctx.Value(retryAttemptKey{}).(*retryAttempt)
	return attempt
}

func (a *retryAttempt) isReplay() bool {
	return a != nil && a.number > 1
}

// withRetry replays idempotent reads that fail with a 5xx. The response is
// buffered per attempt so only the final one reaches the client.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	exclusions := make(map[string]struct{}, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		exclusions[path] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := exclusions[r.URL.Path]; skip || !idempotentRead(r.Method) {
			handler.ServeHTTP(w, r)
			return
		}

		state := &retryAttempt{}
		ctx := context.WithValue(r.Context(), retryAttemptKey{}, state)
		start := time.Now()
		status := 0
		defer func() {
			if status == 0 || state.route == "" {
				return
			}
			metrics.ObserveHTTP(r.Method, state.route, strconv.Itoa(status), time.Since(start))
		}()

		for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
			if attempt > 1 {
				delay := cfg.BaseBackoff * time.Duration(1<<(attempt-2))
				select {
				case <-r.Context().Done():
					return
				case <-time.After(delay):
				}
			}

			state.number = attempt
			recorder := newRetryResponseRecorder(w)
			handler.ServeHTTP(recorder, r.Clone(ctx))
			status = recorder.statusCode
			if !recorder.retryable() || attempt == cfg.MaxAttempts {
				recorder.Commit()
				return
			}

			logger.Warn("transient failure, retrying request", "path", r.URL.Path, "status", recorder.statusCode, "attempt", attempt)
		}
	})
}

func idempotentRead(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

type retryResponseRecorder struct {
	dst        http.ResponseWriter
	header     http.Header
	body       bytes.Buffer
	statusCode int
	wroteHead  bool
}

func newRetryResponseRecorder(dst http.ResponseWriter) *retryResponseRecorder {
	return &retryResponseRecorder{
		dst:        dst,
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func (r *retryResponseRecorder) Header() http.Header {
	return r.header
}

func (r *retryResponseRecorder) WriteHeader(status int) {
	if r.wroteHead {
		return
	}
	r.statusCode = status
	r.wroteHead = true
}

func (r *retryResponseRecorder) Write(b []byte) (int, error) {
	return r.body.Write(b)
}

func (r *retryResponseRecorder) Commit() {
	dstHeader := r.dst.Header()
	for k := range dstHeader {
		dstHeader.Del(k)
	}
	for k, values := range r.header {
		copied := make([]string, len(values))
		copy(copied, values)
		dstHeader[k] = copied
	}
	r.dst.WriteHeader(r.statusCode)
	if r.body.Len() > 0 {
		_, _ = r.dst.Write(r.body.Bytes())
	}
}

func (r *retryResponseRecorder) retryable() bool {
	return r.statusCode >= http.StatusInternalServerError
}

func (r *retryResponseRecorder) Flush() {}

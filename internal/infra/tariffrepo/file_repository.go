package tariffrepo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/yanqian/faqdesk/internal/domain/tariff"
	"github.com/yanqian/faqdesk/internal/infra/jsonfile"
)

// FileRepository serves the read-only tariffs document from a JSON file.
type FileRepository struct {
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	cached *tariff.Data
}

// NewFileRepository constructs a repository reading path lazily.
func NewFileRepository(path string, logger *slog.Logger) *FileRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileRepository{path: path, logger: logger.With("component", "tariffrepo.file")}
}

// Path is the backing file.
func (r *FileRepository) Path() string { return r.path }

// Load implements tariff.Repository.
func (r *FileRepository) Load(_ context.Context) (tariff.Data, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cached == nil {
		var data tariff.Data
		if err := jsonfile.Read(r.path, &data); err != nil {
			r.logger.Error("tariffs load failed", "path", r.path, "error", err)
			return tariff.Data{}, fmt.Errorf("load tariffs: %w", err)
		}
		if data.Tariffs == nil {
			data.Tariffs = []tariff.Tariff{}
		}
		r.cached = &data
	}
	return copyData(*r.cached), nil
}

// Invalidate drops the cached document so the next Load rereads the file.
func (r *FileRepository) Invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
	r.logger.Info("tariffs cache invalidated", "path", r.path)
}

func copyData(d tariff.Data) tariff.Data {
	out := d
	out.Tariffs = make([]tariff.Tariff, len(d.Tariffs))
	for i, t := range d.Tariffs {
		t.Features = append([]string(nil), t.Features...)
		out.Tariffs[i] = t
	}
	return out
}

var _ tariff.Repository = (*FileRepository)(nil)

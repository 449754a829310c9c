package faqrepo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/yanqian/faqdesk/internal/domain/faq"
	"github.com/yanqian/faqdesk/internal/infra/jsonfile"
	"github.com/yanqian/faqdesk/pkg/util"
)

const documentVersion = "1.0"

// FileRepository serves the FAQ document from a JSON file. The parsed document
// is cached until the next Save or Invalidate; every Load hands out a copy.
type FileRepository struct {
	path   string
	logger *slog.Logger
	today  func() string

	mu     sync.RWMutex
	cached *faq.Data
}

// NewFileRepository constructs a repository reading path lazily.
func NewFileRepository(path string, logger *slog.Logger) *FileRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileRepository{
		path:   path,
		logger: logger.With("component", "faqrepo.file"),
		today:  util.Today,
	}
}

// Path is the backing file.
func (r *FileRepository) Path() string { return r.path }

// Load implements faq.Repository.
func (r *FileRepository) Load(_ context.Context) (faq.Data, error) {
	r.mu.RLock()
	if r.cached != nil {
		out := r.cached.Clone()
		r.mu.RUnlock()
		return out, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cached == nil {
		var data faq.Data
		if err := jsonfile.Read(r.path, &data); err != nil {
			r.logger.Error("faq data load failed", "path", r.path, "error", err)
			return faq.Data{}, fmt.Errorf("load faq data: %w", err)
		}
		if data.FAQ == nil {
			data.FAQ = []faq.Entry{}
		}
		if data.Categories == nil {
			data.Categories = faq.Categories{}
		}
		r.cached = &data
		r.logger.Debug("faq data loaded", "entries", len(data.FAQ))
	}
	return r.cached.Clone(), nil
}

// Save implements faq.Repository. Metadata is recomputed from the document.
func (r *FileRepository) Save(_ context.Context, data faq.Data) error {
	out := data.Clone()
	if out.FAQ == nil {
		out.FAQ = []faq.Entry{}
	}
	out.Metadata = &faq.Metadata{
		Version:         documentVersion,
		LastUpdated:     r.today(),
		TotalQuestions:  len(out.FAQ),
		CategoriesCount: len(out.Categories),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := jsonfile.WriteAtomic(r.path, out); err != nil {
		return fmt.Errorf("save faq data: %w", err)
	}
	r.cached = nil
	return nil
}

// Invalidate drops the cached document so the next Load rereads the file.
func (r *FileRepository) Invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
	r.logger.Info("faq data cache invalidated", "path", r.path)
}

var _ faq.Repository = (*FileRepository)(nil)

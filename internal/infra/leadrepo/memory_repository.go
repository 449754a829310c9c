package leadrepo

import (
	"context"
	"sync"

	"github.com/yanqian/faqdesk/internal/domain/lead"
)

// MemoryRepository keeps applications in memory for tests/dev.
type MemoryRepository struct {
	mu   sync.RWMutex
	apps []lead.Application
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Create implements lead.Repository.
func (r *MemoryRepository) Create(_ context.Context, app lead.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps = append(r.apps, app)
	return nil
}

// List returns the newest applications first.
func (r *MemoryRepository) List(_ context.Context, limit int) ([]lead.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]lead.Application, 0, min(limit, len(r.apps)))
	for i := len(r.apps) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.apps[i])
	}
	return out, nil
}

var _ lead.Repository = (*MemoryRepository)(nil)

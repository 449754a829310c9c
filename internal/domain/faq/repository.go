package faq

import "context"

// Repository loads and persists the FAQ document.
type Repository interface {
	// Load returns a copy the caller owns.
	Load(ctx context.Context) (Data, error)
	// Save replaces the stored document. Metadata is recomputed by the implementation.
	Save(ctx context.Context, data Data) error
}

// Store keeps search counters for trending queries.
type Store interface {
	IncrementQuery(ctx context.Context, canonical, display string) error
	TopQueries(ctx context.Context, limit int) ([]TrendingQuery, error)
}

// Archiver keeps an off-site copy of the document after each write.
type Archiver interface {
	ArchiveSnapshot(ctx context.Context, data Data) error
}

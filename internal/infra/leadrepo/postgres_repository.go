package leadrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/faqdesk/internal/domain/lead"
)

const schema = `
CREATE TABLE IF NOT EXISTS applications (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	email           TEXT NOT NULL,
	phone           TEXT NOT NULL,
	selected_tariff TEXT NOT NULL,
	message         TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS applications_created_at_idx ON applications (created_at DESC);
`

// PostgresRepository persists applications in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the applications table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

// Create inserts a new application row.
func (r *PostgresRepository) Create(ctx context.Context, app lead.Application) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO applications (id, name, email, phone, selected_tariff, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, app.ID, app.Name, app.Email, app.Phone, app.SelectedTariff, app.Message, app.CreatedAt)
	return err
}

// List returns the newest applications first.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]lead.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, selected_tariff, message, created_at
		FROM applications
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]lead.Application, 0, limit)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (lead.Application, error) {
	var app lead.Application
	var created time.Time
	if err := row.Scan(&app.ID, &app.Name, &app.Email, &app.Phone, &app.SelectedTariff, &app.Message, &created); err != nil {
		return lead.Application{}, err
	}
	app.CreatedAt = created.UTC()
	return app, nil
}

var _ lead.Repository = (*PostgresRepository)(nil)

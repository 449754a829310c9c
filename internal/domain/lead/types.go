package lead

import (
	"context"
	"time"
)

// SubmitRequest is the public application form.
type SubmitRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	SelectedTariff string `json:"selectedTariff"`
	Message        string `json:"message"`
}

// Application is a stored lead.
type Application struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	SelectedTariff string    `json:"selected_tariff"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

// SubmitResponse is returned to the form.
type SubmitResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ApplicationID string `json:"application_id,omitempty"`
}

// Repository persists applications.
type Repository interface {
	Create(ctx context.Context, app Application) error
	List(ctx context.Context, limit int) ([]Application, error)
}

// JobQueue schedules background work.
type JobQueue interface {
	Enqueue(ctx context.Context, name string, payload any) error
}

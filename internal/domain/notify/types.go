package notify

import (
	"context"
	"time"
)

// JobName is the queue job that carries a Notification payload.
const JobName = "notify.send"

// Notification is a message delivered to every configured channel.
// Body is Markdown; channels render it to their own format.
type Notification struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Row       []string  `json:"row,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Channel delivers notifications to one destination.
type Channel interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// Config tunes the dispatcher.
type Config struct {
	Workers        int
	ChannelTimeout time.Duration
}

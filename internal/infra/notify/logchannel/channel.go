package logchannel

import (
	"context"
	"log/slog"

	"github.com/yanqian/faqdesk/internal/domain/notify"
)

// Channel writes notifications to the application log. It is the only
// channel when no outbound destination is configured.
type Channel struct {
	logger *slog.Logger
}

// New builds the channel.
func New(logger *slog.Logger) *Channel {
	return &Channel{logger: logger.With("component", "notify.log")}
}

func (c *Channel) Name() string { return "log" }

func (c *Channel) Send(ctx context.Context, n notify.Notification) error {
	c.logger.InfoContext(ctx, "notification", "id", n.ID, "subject", n.Subject, "body", n.Body)
	return nil
}

var _ notify.Channel = (*Channel)(nil)

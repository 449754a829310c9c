package lead

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yanqian/faqdesk/internal/domain/notify"
	apperrors "github.com/yanqian/faqdesk/pkg/errors"
	"github.com/yanqian/faqdesk/pkg/metrics"
	"github.com/yanqian/faqdesk/pkg/util"
)

const (
	submittedMessage = "Заявка успешно отправлена"
	defaultListLimit = 50
	maxListLimit     = 500
)

// Service accepts applications and lists them for operators.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error)
	List(ctx context.Context, limit int) ([]Application, error)
}

type service struct {
	repo   Repository
	queue  JobQueue
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires the lead domain.
func NewService(repo Repository, queue JobQueue, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		queue:  queue,
		logger: logger.With("component", "lead.service"),
		now:    util.NowUTC,
		newID:  func() string { return "APP-" + ulid.Make().String() },
	}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error) {
	app, err := s.validate(req)
	if err != nil {
		return SubmitResponse{}, err
	}
	app.ID = s.newID()
	app.CreatedAt = s.now()

	if err := s.repo.Create(ctx, app); err != nil {
		return SubmitResponse{}, apperrors.Wrap("lead_error", "failed to store application", err)
	}
	metrics.IncLeadSubmitted()
	s.logger.Info("application submitted", "id", app.ID, "tariff", app.SelectedTariff)

	if s.queue != nil {
		if err := s.queue.Enqueue(ctx, notify.JobName, NewNotification(app)); err != nil {
			s.logger.Warn("application notification enqueue failed", "id", app.ID, "error", err)
		}
	}

	return SubmitResponse{Success: true, Message: submittedMessage, ApplicationID: app.ID}, nil
}

func (s *service) List(ctx context.Context, limit int) ([]Application, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	apps, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap("lead_error", "failed to list applications", err)
	}
	return apps, nil
}

func (s *service) validate(req SubmitRequest) (Application, error) {
	app := Application{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		SelectedTariff: strings.TrimSpace(req.SelectedTariff),
		Message:        strings.TrimSpace(req.Message),
	}
	var missing []string
	if app.Name == "" {
		missing = append(missing, "name")
	}
	if app.Email == "" {
		missing = append(missing, "email")
	}
	if app.Phone == "" {
		missing = append(missing, "phone")
	}
	if app.SelectedTariff == "" {
		missing = append(missing, "selectedTariff")
	}
	if len(missing) > 0 {
		return Application{}, apperrors.Wrap(apperrors.CodeInvalidInput, "missing required fields: "+strings.Join(missing, ", "), nil)
	}
	addr, err := mail.ParseAddress(app.Email)
	if err != nil || addr.Address != app.Email {
		return Application{}, apperrors.Wrap(apperrors.CodeInvalidInput, "email is not valid", nil)
	}
	return app, nil
}

package tariff

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	apperrors "github.com/yanqian/faqdesk/pkg/errors"
)

// Repository loads the tariffs document.
type Repository interface {
	Load(ctx context.Context) (Data, error)
}

// Service exposes pricing information.
type Service interface {
	All(ctx context.Context) (Data, error)
	ByID(ctx context.Context, id string) (Tariff, error)
	Popular(ctx context.Context) ([]Tariff, error)
	Recommended(ctx context.Context) ([]Tariff, error)
	Discounts(ctx context.Context) (Discounts, error)
	TrialPeriod(ctx context.Context) (int, error)
	CalculatePrice(ctx context.Context, id, period string) (PriceCalculation, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the tariff domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger.With("component", "tariff.service")}
}

func (s *service) load(ctx context.Context) (Data, error) {
	data, err := s.repo.Load(ctx)
	if err != nil {
		return Data{}, apperrors.Wrap("tariff_error", "failed to load tariffs", err)
	}
	return data, nil
}

func (s *service) All(ctx context.Context) (Data, error) {
	return s.load(ctx)
}

func (s *service) ByID(ctx context.Context, id string) (Tariff, error) {
	data, err := s.load(ctx)
	if err != nil {
		return Tariff{}, err
	}
	for _, t := range data.Tariffs {
		if t.ID == id {
			return t, nil
		}
	}
	return Tariff{}, apperrors.Wrap(apperrors.CodeNotFound, "tariff not found", nil)
}

func (s *service) Popular(ctx context.Context) ([]Tariff, error) {
	return s.filter(ctx, func(t Tariff) bool { return t.Popular })
}

func (s *service) Recommended(ctx context.Context) ([]Tariff, error) {
	return s.filter(ctx, func(t Tariff) bool { return t.Recommended })
}

func (s *service) filter(ctx context.Context, keep func(Tariff) bool) ([]Tariff, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Tariff, 0, len(data.Tariffs))
	for _, t := range data.Tariffs {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *service) Discounts(ctx context.Context) (Discounts, error) {
	data, err := s.load(ctx)
	if err != nil {
		return Discounts{}, err
	}
	return data.Discounts, nil
}

func (s *service) TrialPeriod(ctx context.Context) (int, error) {
	data, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return data.TrialPeriod, nil
}

func (s *service) CalculatePrice(ctx context.Context, id, period string) (PriceCalculation, error) {
	data, err := s.load(ctx)
	if err != nil {
		return PriceCalculation{}, err
	}
	var (
		tariff Tariff
		found  bool
	)
	for _, t := range data.Tariffs {
		if t.ID == id {
			tariff, found = t, true
			break
		}
	}
	if !found {
		return PriceCalculation{}, apperrors.Wrap(apperrors.CodeNotFound, "tariff not found", nil)
	}

	switch period {
	case PeriodMonthly:
		return PriceCalculation{
			Period:     "месяц",
			Price:      tariff.Price,
			Discount:   0,
			FinalPrice: float64(tariff.Price),
		}, nil
	case PeriodQuarterly:
		return discounted(tariff.Price, data.Discounts.Quarterly, 3, "квартал"), nil
	case PeriodYearly:
		return discounted(tariff.Price, data.Discounts.Yearly, 12, "год"), nil
	default:
		return PriceCalculation{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown period %q", period), nil)
	}
}

// discounted applies pct to the monthly price and scales both figures to months.
func discounted(monthly, pct, months int, label string) PriceCalculation {
	perMonth := float64(monthly) - float64(monthly)*float64(pct)/100
	return PriceCalculation{
		Period:     label,
		Price:      monthly * months,
		Discount:   pct,
		FinalPrice: roundCents(perMonth * float64(months)),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

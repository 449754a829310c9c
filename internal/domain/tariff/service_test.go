package tariff

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/faqdesk/pkg/errors"
)

type stubRepo struct {
	data Data
	err  error
}

func (r stubRepo) Load(context.Context) (Data, error) { return r.data, r.err }

func newServiceUnderTest(repo Repository) Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleData() Data {
	return Data{
		Tariffs: []Tariff{
			{ID: "basic", Name: "Базовый", Price: 990, Currency: "RUB", Popular: true},
			{ID: "pro", Name: "Профи", Price: 2990, Currency: "RUB", Recommended: true},
			{ID: "team", Name: "Команда", Price: 4999, Currency: "RUB", Popular: true},
		},
		Discounts:   Discounts{Quarterly: 10, Yearly: 20},
		TrialPeriod: 14,
	}
}

func TestService_CalculatePrice(t *testing.T) {
	svc := newServiceUnderTest(stubRepo{data: sampleData()})
	ctx := context.Background()

	cases := []struct {
		period string
		id     string
		want   PriceCalculation
	}{
		{period: "monthly", id: "basic", want: PriceCalculation{Period: "месяц", Price: 990, Discount: 0, FinalPrice: 990}},
		{period: "quarterly", id: "basic", want: PriceCalculation{Period: "квартал", Price: 2970, Discount: 10, FinalPrice: 2673}},
		{period: "yearly", id: "pro", want: PriceCalculation{Period: "год", Price: 35880, Discount: 20, FinalPrice: 28704}},
		{period: "quarterly", id: "team", want: PriceCalculation{Period: "квартал", Price: 14997, Discount: 10, FinalPrice: 13497.3}},
	}
	for _, tc := range cases {
		got, err := svc.CalculatePrice(ctx, tc.id, tc.period)
		require.NoError(t, err, tc.period)
		require.Equal(t, tc.want, got, tc.period)
	}

	_, err := svc.CalculatePrice(ctx, "basic", "weekly")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.CalculatePrice(ctx, "missing", "monthly")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestService_Filters(t *testing.T) {
	svc := newServiceUnderTest(stubRepo{data: sampleData()})
	ctx := context.Background()

	popular, err := svc.Popular(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	require.Equal(t, "basic", popular[0].ID)

	recommended, err := svc.Recommended(ctx)
	require.NoError(t, err)
	require.Len(t, recommended, 1)
	require.Equal(t, "pro", recommended[0].ID)

	trial, err := svc.TrialPeriod(ctx)
	require.NoError(t, err)
	require.Equal(t, 14, trial)

	discounts, err := svc.Discounts(ctx)
	require.NoError(t, err)
	require.Equal(t, Discounts{Quarterly: 10, Yearly: 20}, discounts)

	_, err = svc.ByID(ctx, "nope")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestService_LoadFailure(t *testing.T) {
	svc := newServiceUnderTest(stubRepo{err: errors.New("no file")})

	_, err := svc.All(context.Background())
	require.True(t, apperrors.IsCode(err, "tariff_error"))
}

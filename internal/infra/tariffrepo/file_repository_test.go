package tariffrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileRepository_LoadAndInvalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tariffs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "tariffs": [{"id": "basic", "name": "Базовый", "price": 990, "currency": "RUB", "period": "месяц", "description": "", "features": ["a", "b"], "popular": true, "recommended": false}],
  "discounts": {"quarterly": 10, "yearly": 20},
  "trial_period": 14
}`), 0o644))
	repo := NewFileRepository(path, nil)
	ctx := context.Background()

	data, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, data.Tariffs, 1)
	require.Equal(t, 14, data.TrialPeriod)
	require.Equal(t, 20, data.Discounts.Yearly)

	data.Tariffs[0].Features[0] = "mutated"
	again, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "a", again.Tariffs[0].Features[0])

	require.NoError(t, os.WriteFile(path, []byte(`{"tariffs": [], "discounts": {"quarterly": 5, "yearly": 15}, "trial_period": 7}`), 0o644))
	repo.Invalidate()
	fresh, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, fresh.Tariffs)
	require.Equal(t, 7, fresh.TrialPeriod)
}

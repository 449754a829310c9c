package leadrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faqdesk/internal/domain/lead"
)

func TestMemoryRepository_ListNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	for _, id := range []string{"APP-1", "APP-2", "APP-3"} {
		require.NoError(t, repo.Create(ctx, lead.Application{ID: id}))
	}

	apps, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	require.Equal(t, "APP-3", apps[0].ID)
	require.Equal(t, "APP-2", apps[1].ID)

	all, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

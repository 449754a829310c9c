package faqstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faqdesk/internal/domain/faq"
)

func TestMemoryStore_TopQueries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.IncrementQuery(ctx, "как оплатить", "Как оплатить?"))
	require.NoError(t, store.IncrementQuery(ctx, "как оплатить", "КАК ОПЛАТИТЬ"))
	require.NoError(t, store.IncrementQuery(ctx, "возврат", ""))
	require.NoError(t, store.IncrementQuery(ctx, "доставка", "доставка"))
	require.NoError(t, store.IncrementQuery(ctx, "", "ignored"))

	top, err := store.TopQueries(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []faq.TrendingQuery{
		{Query: "Как оплатить?", Count: 2},
		{Query: "возврат", Count: 1},
	}, top)

	all, err := store.TopQueries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

package faqstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseScoredMembers(t *testing.T) {
	tests := []struct {
		name    string
		reply   any
		members []string
		scores  []float64
	}{
		{
			name:    "resp3 pairs",
			reply:   []any{[]any{"оплата", float64(5)}, []any{"тарифы", float64(2)}},
			members: []string{"оплата", "тарифы"},
			scores:  []float64{5, 2},
		},
		{
			name:    "resp2 flat",
			reply:   []any{"оплата", "5", "тарифы", "2"},
			members: []string{"оплата", "тарифы"},
			scores:  []float64{5, 2},
		},
		{
			name:    "integer scores",
			reply:   []any{"оплата", int64(3)},
			members: []string{"оплата"},
			scores:  []float64{3},
		},
		{
			name:    "empty",
			reply:   []any{},
			members: []string{},
			scores:  []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members, scores, err := parseScoredMembers(tt.reply)
			require.NoError(t, err)
			require.Equal(t, tt.members, members)
			require.Equal(t, tt.scores, scores)
		})
	}
}

func TestParseScoredMembers_RejectsMalformedReplies(t *testing.T) {
	for name, reply := range map[string]any{
		"not an array":  "оплата",
		"odd flat list": []any{"оплата", "5", "тарифы"},
		"short pair":    []any{[]any{"оплата"}},
		"bad score":     []any{"оплата", "many"},
		"bad member":    []any{int64(1), "5"},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := parseScoredMembers(reply)
			require.Error(t, err)
		})
	}
}

func TestValkeyStore_Keys(t *testing.T) {
	store := NewValkeyStore(nil, "")
	require.Equal(t, "faqdesk:trending", store.trendingKey())
	require.Equal(t, "faqdesk:trending:display", store.displayKey())

	store = NewValkeyStore(nil, "site")
	require.Equal(t, "site:trending", store.trendingKey())
}

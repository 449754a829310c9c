package faq

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEntries() []Entry {
	return []Entry{
		{ID: 1, Question: "Как оплатить подписку", Answer: "...", Keywords: []string{"оплата", "платеж"}, Category: "billing", Priority: intPtr(1)},
		{ID: 2, Question: "Как отменить заказ", Answer: "...", Keywords: []string{"отмена"}, Category: "orders", Priority: intPtr(5)},
	}
}

func ids(entries []Entry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestScorerSearch_KeywordHitExcludesZeroScores(t *testing.T) {
	s := NewScorer(newTestLogger())

	got := s.Search("оплата", sampleEntries())
	require.Equal(t, []int64{1}, ids(got))
}

func TestScorerSearch_CaseInsensitive(t *testing.T) {
	s := NewScorer(newTestLogger())

	got := s.Search("ОТМЕНИТЬ", sampleEntries())
	require.Equal(t, []int64{2}, ids(got))
}

func TestScorerSearch_QuestionOutranksAnswer(t *testing.T) {
	entries := []Entry{
		{ID: 1, Question: "Общие сведения", Answer: "Возврат оформляется за три дня"},
		{ID: 2, Question: "Возврат средств", Answer: "Обратитесь в поддержку"},
	}
	s := NewScorer(newTestLogger())

	got := s.Search("возврат", entries)
	require.Equal(t, []int64{2, 1}, ids(got))
}

func TestScorerSearch_TiesKeepInputOrder(t *testing.T) {
	entries := []Entry{
		{ID: 7, Question: "Доставка по городу"},
		{ID: 3, Question: "Доставка за город"},
		{ID: 5, Question: "Доставка курьером"},
	}
	s := NewScorer(newTestLogger())

	got := s.Search("доставка", entries)
	require.Equal(t, []int64{7, 3, 5}, ids(got))
}

func TestScorerSearch_BlankQuery(t *testing.T) {
	s := NewScorer(newTestLogger())

	got := s.Search("   ", sampleEntries())
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestScorerSearch_DoesNotMutateEntries(t *testing.T) {
	entries := sampleEntries()
	before := Data{FAQ: entries}.Clone()
	s := NewScorer(newTestLogger())

	first := s.Search("как", entries)
	second := s.Search("как", entries)
	require.Equal(t, before.FAQ, entries)
	require.Equal(t, first, second)
}

func TestScoreExact_Points(t *testing.T) {
	cases := []struct {
		name  string
		query string
		entry Entry
		score float64
	}{
		{
			name:  "whole query and word in question",
			query: "оплата",
			entry: Entry{Question: "Оплата картой"},
			score: 1000 + 100,
		},
		{
			name:  "repeated words are counted twice",
			query: "оплата оплата",
			entry: Entry{Question: "оплата"},
			score: 200,
		},
		{
			name:  "word per keyword pair",
			query: "карта visa",
			entry: Entry{Question: "x", Keywords: []string{"карта", "visa карта"}},
			score: 50 + 50 + 50,
		},
		{
			name:  "answer only",
			query: "поддержка",
			entry: Entry{Question: "x", Answer: "Пишите в поддержку или поддержка ответит"},
			score: 10 + 1,
		},
		{
			name:  "priority zero gives raw bonus",
			query: "счет",
			entry: Entry{Question: "счет", Priority: intPtr(0)},
			score: 1000 + 100 + 105,
		},
		{
			name:  "no match gets no bonus",
			query: "счет",
			entry: Entry{Question: "другое", Priority: intPtr(1)},
			score: 0,
		},
	}

	for _, tc := range cases {
		q := foldCase(tc.query)
		got := scoreExact(q, strings.Fields(q), tc.entry)
		require.Equal(t, tc.score, got.Score, tc.name)
	}
}

func TestScoreExact_PriorityBonus(t *testing.T) {
	q := foldCase("тариф")
	high := scoreExact(q, strings.Fields(q), Entry{Question: "Тариф", Priority: intPtr(1)})
	low := scoreExact(q, strings.Fields(q), Entry{Question: "Тариф", Priority: intPtr(21)})
	none := scoreExact(q, strings.Fields(q), Entry{Question: "Тариф"})

	require.Equal(t, float64(100), high.Score-low.Score)
	require.Equal(t, low.Score, none.Score)
}

func TestScorerSearch_PriorityAboveCeilingIsNotClamped(t *testing.T) {
	entries := []Entry{
		{ID: 1, Question: "x", Answer: "ответ про бонус", Priority: intPtr(30)},
		{ID: 2, Question: "x", Answer: "ответ про бонус", Priority: intPtr(21)},
	}
	q := foldCase("бонус")
	require.Equal(t, float64(11-45), scoreExact(q, strings.Fields(q), entries[0]).Score)

	s := NewScorer(newTestLogger())
	got := s.Search("бонус", entries)
	require.Equal(t, []int64{2}, ids(got))
}

func TestDominantField(t *testing.T) {
	require.Equal(t, MatchQuestion, dominantField(10, 10, 0))
	require.Equal(t, MatchQuestion, dominantField(0, 0, 0))
	require.Equal(t, MatchKeywords, dominantField(0, 5, 5))
	require.Equal(t, MatchAnswer, dominantField(1, 2, 3))
}

func TestPopularEntries(t *testing.T) {
	entries := []Entry{
		{ID: 1, Priority: intPtr(1)},
		{ID: 2},
		{ID: 3, Priority: intPtr(7)},
		{ID: 4, Priority: intPtr(7)},
	}

	require.Equal(t, []int64{2, 3, 4}, ids(PopularEntries(entries, 3)))
	require.Equal(t, []int64{2, 3, 4, 1}, ids(PopularEntries(entries, 10)))
	require.Empty(t, PopularEntries(entries, 0))
	require.Equal(t, int64(1), entries[0].ID)
}

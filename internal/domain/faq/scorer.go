package faq

import (
	"log/slog"
	"sort"
	"strings"
)

// Points awarded by the exact scorer. Question beats keywords beats answer,
// and a whole-query hit beats word hits inside the same field.
const (
	exactQuestionPhrase = 1000
	exactQuestionWord   = 100
	exactKeywordPhrase  = 500
	exactKeywordWord    = 50
	exactAnswerPhrase   = 10
	exactAnswerWord     = 1

	priorityCeiling = 21
	priorityStep    = 5
)

// Scorer ranks FAQ entries against free-text queries. It only reads the
// entries it is given and keeps no state between calls.
type Scorer struct {
	logger *slog.Logger
}

// NewScorer builds a Scorer; a nil logger falls back to slog.Default.
func NewScorer(logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{logger: logger.With("component", "faq.scorer")}
}

// Search ranks entries by literal substring and whole-word hits. Entries that
// score zero are dropped, ties keep input order. A failure while scoring is
// logged and produces an empty result instead of reaching the caller.
func (s *Scorer) Search(query string, entries []Entry) (results []Entry) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("exact search failed", "query", query, "panic", r)
			results = []Entry{}
		}
	}()

	q := foldCase(strings.TrimSpace(query))
	if q == "" {
		return []Entry{}
	}
	words := strings.Fields(q)

	scored := make([]ScoredEntry, 0, len(entries))
	for _, e := range entries {
		if se := scoreExact(q, words, e); se.Score > 0 {
			scored = append(scored, se)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	results = make([]Entry, len(scored))
	for i, se := range scored {
		results[i] = se.Entry
	}
	return results
}

func scoreExact(q string, words []string, e Entry) ScoredEntry {
	question := foldCase(e.Question)
	questionScore := 0
	if strings.Contains(question, q) {
		questionScore += exactQuestionPhrase
	}
	questionScore += countContained(words, question) * exactQuestionWord

	keywordScore := 0
	for _, kw := range e.Keywords {
		keyword := foldCase(kw)
		if strings.Contains(keyword, q) {
			keywordScore += exactKeywordPhrase
		}
		keywordScore += countContained(words, keyword) * exactKeywordWord
	}

	answer := foldCase(e.Answer)
	answerScore := 0
	if strings.Contains(answer, q) {
		answerScore += exactAnswerPhrase
	}
	answerScore += countContained(words, answer) * exactAnswerWord

	score := questionScore + keywordScore + answerScore
	// The priority bonus only reorders entries that matched. It is not clamped:
	// priorities above 21 subtract points.
	if score > 0 && e.Priority != nil {
		score += (priorityCeiling - *e.Priority) * priorityStep
	}

	return ScoredEntry{
		Entry:     e,
		Score:     float64(score),
		MatchType: dominantField(float64(questionScore), float64(keywordScore), float64(answerScore)),
	}
}

// countContained counts the words (duplicates included) found in text.
func countContained(words []string, text string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

// dominantField picks the largest component; ties go to question, then keywords.
func dominantField(question, keywords, answer float64) MatchType {
	switch {
	case question >= keywords && question >= answer:
		return MatchQuestion
	case keywords >= answer:
		return MatchKeywords
	default:
		return MatchAnswer
	}
}

// PopularEntries orders entries by descending priority value, treating a
// missing priority as NoPriority, and returns at most limit of them.
func PopularEntries(entries []Entry, limit int) []Entry {
	if limit <= 0 {
		return []Entry{}
	}
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PriorityOrNone() > sorted[j].PriorityOrNone()
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

package faq

import (
	"math"
	"sort"
	"strings"
)

const (
	maxFuzzyMatches = 10
	maxSuggestions  = 5

	fuzzyQuestionPhrase = 80.0
	fuzzyOverlapWeight  = 40.0
	fuzzyKeywordPhrase  = 30.0
	fuzzyAnswerPhrase   = 10.0

	questionWeight = 0.6
	keywordWeight  = 0.3
	answerWeight   = 0.1

	// Entries at or below this combined score are noise.
	relevanceFloor = 1.0
	relevanceCap   = 100
)

// PopularFunc returns the most popular entries, used when a fuzzy search has
// too few hits to suggest alternatives.
type PopularFunc func(limit int) []Entry

// FuzzySearch scores entries by a weighted blend of phrase hits and token
// overlap and returns the top matches plus suggested alternative questions.
// A blank query yields an unsuccessful result without scanning.
func (s *Scorer) FuzzySearch(query string, entries []Entry, popular PopularFunc) (result FuzzyResult) {
	if strings.TrimSpace(query) == "" {
		return failedFuzzyResult(query, "search query cannot be empty")
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("fuzzy search failed", "query", query, "panic", r)
			result = failedFuzzyResult(query, "search failed")
		}
	}()

	normalized := normalizeText(strings.TrimSpace(query))
	queryTokens := tokenSet(tokenize(normalized))

	ranked := make([]ScoredEntry, 0, len(entries))
	for _, e := range entries {
		if se, ok := scoreFuzzy(normalized, queryTokens, e); ok {
			ranked = append(ranked, se)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	top := ranked
	if len(top) > maxFuzzyMatches {
		top = top[:maxFuzzyMatches]
	}
	matches := make([]FuzzyMatch, len(top))
	for i, se := range top {
		matches[i] = toFuzzyMatch(se)
	}

	return FuzzyResult{
		Success:      true,
		Query:        query,
		ResultsCount: len(matches),
		Matches:      matches,
		Suggestions:  suggestionsFor(ranked, entries, popular),
	}
}

func scoreFuzzy(query string, queryTokens map[string]struct{}, e Entry) (ScoredEntry, bool) {
	question := normalizeText(e.Question)
	questionScore := 0.0
	if strings.Contains(question, query) {
		questionScore += fuzzyQuestionPhrase
	}
	// Overlap is relative to the question's own vocabulary, so a short question
	// fully covered by a longer query still earns the whole weight.
	if questionTokens := tokenSet(tokenize(question)); len(questionTokens) > 0 {
		overlap := 0
		for t := range questionTokens {
			if _, ok := queryTokens[t]; ok {
				overlap++
			}
		}
		questionScore += float64(overlap) / float64(len(questionTokens)) * fuzzyOverlapWeight
	}

	keywordScore := 0.0
	if len(e.Keywords) > 0 {
		overlapping := 0
		for _, kw := range e.Keywords {
			keyword := normalizeText(kw)
			// An empty keyword is contained in every query.
			if strings.Contains(query, keyword) {
				keywordScore += fuzzyKeywordPhrase
			}
			if sharesToken(tokenize(keyword), queryTokens) {
				overlapping++
			}
		}
		keywordScore += float64(overlapping) / float64(len(e.Keywords)) * fuzzyOverlapWeight
	}

	answerScore := 0.0
	if strings.Contains(normalizeText(e.Answer), query) {
		answerScore = fuzzyAnswerPhrase
	}

	combined := questionWeight*questionScore + keywordWeight*keywordScore + answerWeight*answerScore
	if combined <= relevanceFloor {
		return ScoredEntry{}, false
	}
	return ScoredEntry{
		Entry:     e,
		Score:     combined,
		MatchType: dominantField(questionScore, keywordScore, answerScore),
	}, true
}

func sharesToken(tokens []string, set map[string]struct{}) bool {
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// relevanceScore rounds the combined score and clamps it to relevanceCap.
// Scores above the cap collapse into the same bucket.
func relevanceScore(combined float64) int {
	rounded := int(math.Round(combined))
	if rounded > relevanceCap {
		return relevanceCap
	}
	if rounded < 0 {
		return 0
	}
	return rounded
}

func toFuzzyMatch(se ScoredEntry) FuzzyMatch {
	keywords := se.Entry.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return FuzzyMatch{
		ID:             se.Entry.ID,
		Question:       se.Entry.Question,
		Answer:         se.Entry.Answer,
		Keywords:       keywords,
		Category:       se.Entry.Category,
		RelevanceScore: relevanceScore(se.Score),
		MatchType:      se.MatchType,
	}
}

// suggestionsFor returns ranked positions 2-6 when there is more than one hit,
// otherwise the most popular questions.
func suggestionsFor(ranked []ScoredEntry, entries []Entry, popular PopularFunc) []string {
	suggestions := make([]string, 0, maxSuggestions)
	if len(ranked) > 1 {
		for _, se := range ranked[1:] {
			if len(suggestions) == maxSuggestions {
				break
			}
			suggestions = append(suggestions, se.Entry.Question)
		}
		return suggestions
	}

	var fallback []Entry
	if popular != nil {
		fallback = popular(maxSuggestions)
	} else {
		fallback = PopularEntries(entries, maxSuggestions)
	}
	for _, e := range fallback {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, e.Question)
	}
	return suggestions
}

func failedFuzzyResult(query, message string) FuzzyResult {
	return FuzzyResult{
		Success:     false,
		Query:       query,
		Matches:     []FuzzyMatch{},
		Suggestions: []string{},
		Message:     message,
	}
}

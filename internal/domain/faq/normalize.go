package faq

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// foldCase lower-cases s with Russian casing rules. A Caser keeps state, so
// every call gets its own.
func foldCase(s string) string {
	return cases.Lower(language.Russian).String(s)
}

// normalizeText folds case and maps "ё" to "е".
func normalizeText(s string) string {
	return strings.ReplaceAll(foldCase(s), "ё", "е")
}

func isTokenRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'а' && r <= 'я') || (r >= '0' && r <= '9')
}

// tokenize splits already-normalized text on every run of characters outside
// [a-z], [а-я] and [0-9]. Empty tokens are never returned.
func tokenize(normalized string) []string {
	return strings.FieldsFunc(normalized, func(r rune) bool { return !isTokenRune(r) })
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// canonicalQuery is the key under which a search query is counted as trending.
func canonicalQuery(q string) string {
	return strings.Join(tokenize(normalizeText(q)), " ")
}

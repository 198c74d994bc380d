package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// fold lowercases rune by rune so the folded text has exactly as many runes
// as the original and offsets computed on it map back one to one.
func fold(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// Tokens splits text on whitespace and keeps lowercase tokens longer than
// one character.
func Tokens(text string) []string {
	fields := strings.Fields(fold(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// tokenRatio is the fraction of tokens found as substrings of text.
// No tokens means no overlap.
func tokenRatio(tokens []string, text string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	matched := 0
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}

func wordSet(text string) map[string]struct{} {
	fields := strings.Fields(fold(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

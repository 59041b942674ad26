// Package token turns free text into normalized search tokens.
package token

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinLength is the shortest token kept, in runes.
const MinLength = 3

// wordRun matches maximal runs of word characters and hyphens.
var wordRun = regexp.MustCompile(`[\p{L}\p{N}_-]+`)

// Tokenize lowercases text and returns its tokens in order of appearance.
// Hyphens inside a run are kept ("business-model"), leading and trailing ones are not.
// Duplicates are returned as-is.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	runs := wordRun.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(runs))
	for _, run := range runs {
		t := strings.Trim(run, "-")
		if utf8.RuneCountInString(t) < MinLength {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// Unique returns tokens with duplicates removed, keeping first occurrences.
func Unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

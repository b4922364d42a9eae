package ingest

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// StopChecker reports whether a token should be dropped.
type StopChecker interface {
	IsStop(token string) bool
}

// Tokenizer produces the keyword view used for vocabulary building.
type Tokenizer struct {
	stops StopChecker
}

// NewTokenizer creates a tokenizer; stops may be nil.
func NewTokenizer(stops StopChecker) *Tokenizer {
	return &Tokenizer{stops: stops}
}

// Tokenize splits text into runs of letters, digits and underscores,
// lowercased, keeping tokens of two or more runes that are not stop words.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := t.processToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if isWordRune(r) {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// TokenizeAll tokenizes every document.
func (t *Tokenizer) TokenizeAll(docs []string) [][]string {
	out := make([][]string, len(docs))
	for i, d := range docs {
		out[i] = t.Tokenize(d)
	}
	return out
}

func (t *Tokenizer) processToken(word string) string {
	if utf8.RuneCountInString(word) < 2 {
		return ""
	}
	if t.stops != nil && t.stops.IsStop(word) {
		return ""
	}
	return word
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

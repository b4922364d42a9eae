package ingest

import (
	"strings"
	"unicode"
)

// Doc is one comment in both normalization views.
type Doc struct {
	Raw    string   // sentiment view
	Tokens []string // graph view: lowercase, whitespace split, alphabetic only
}

// Clean drops entries that are blank after trimming.
func Clean(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Normalize builds the graph view of every document.
func Normalize(docs []string) []Doc {
	out := make([]Doc, len(docs))
	for i, raw := range docs {
		fields := strings.Fields(strings.ToLower(raw))
		tokens := fields[:0]
		for _, f := range fields {
			if IsAlpha(f) {
				tokens = append(tokens, f)
			}
		}
		out[i] = Doc{Raw: raw, Tokens: tokens}
	}
	return out
}

// IsAlpha reports whether s is non-empty and made only of letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// GraphTokens returns the graph view of each document.
func GraphTokens(docs []Doc) [][]string {
	out := make([][]string, len(docs))
	for i, d := range docs {
		out[i] = d.Tokens
	}
	return out
}

package tfidf

import (
	"fmt"
	"sort"

	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
)

// Vocabulary maps terms to column indices. Indices follow lexicographic term order.
type Vocabulary struct {
	index map[string]int
	terms []string
}

// VocabOptions bounds vocabulary construction.
type VocabOptions struct {
	MaxFeatures int     // keep at most this many terms by corpus count (0 = unlimited)
	MinDF       int     // drop terms found in fewer documents
	MaxDFRatio  float64 // drop terms found in a larger share of documents (0 or 1 = disabled)
}

// BuildVocabulary counts terms across docs, applies the document-frequency
// filters and keeps the MaxFeatures most frequent terms, ties broken by term.
func BuildVocabulary(docs [][]string, opts VocabOptions) (*Vocabulary, error) {
	counts := make(map[string]int)
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			counts[tok]++
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	maxDF := len(docs)
	if opts.MaxDFRatio > 0 && opts.MaxDFRatio < 1 {
		maxDF = int(opts.MaxDFRatio * float64(len(docs)))
	}

	candidates := make([]string, 0, len(counts))
	for term := range counts {
		if df[term] < opts.MinDF || df[term] > maxDF {
			continue
		}
		candidates = append(candidates, term)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("build vocabulary: %w: no terms survive filtering", internalerr.ErrNoContent)
	}

	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := counts[candidates[i]], counts[candidates[j]]
		if ci != cj {
			return ci > cj
		}
		return candidates[i] < candidates[j]
	})
	if opts.MaxFeatures > 0 && len(candidates) > opts.MaxFeatures {
		candidates = candidates[:opts.MaxFeatures]
	}
	sort.Strings(candidates)

	v := &Vocabulary{
		index: make(map[string]int, len(candidates)),
		terms: candidates,
	}
	for i, term := range candidates {
		v.index[term] = i
	}
	return v, nil
}

// Index returns the column of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Term returns the term stored at column i.
func (v *Vocabulary) Term(i int) string {
	return v.terms[i]
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns a copy of the terms in index order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

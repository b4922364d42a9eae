package tfidf

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
)

// TermScore pairs a term with a weight. It marshals as a two-element JSON array.
type TermScore struct {
	Term  string
	Score float64
}

// MarshalJSON encodes the pair as [term, score].
func (ts TermScore) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{ts.Term, ts.Score})
}

// UnmarshalJSON decodes a [term, score] array.
func (ts *TermScore) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("term score: expected 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &ts.Term); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &ts.Score)
}

// IDF returns the smoothed inverse document frequency of every vocabulary term:
// ln((1+N)/(1+df)) + 1.
func IDF(docs [][]string, vocab *Vocabulary) []float64 {
	df := make([]int, vocab.Len())
	for _, doc := range docs {
		seen := make(map[int]struct{}, len(doc))
		for _, tok := range doc {
			j, ok := vocab.Index(tok)
			if !ok {
				continue
			}
			if _, dup := seen[j]; dup {
				continue
			}
			seen[j] = struct{}{}
			df[j]++
		}
	}
	n := float64(len(docs))
	idf := make([]float64, len(df))
	for j, d := range df {
		idf[j] = math.Log((1+n)/(1+float64(d))) + 1
	}
	return idf
}

// Fit weights raw term counts by idf and L2-normalizes each document row.
func Fit(docs [][]string, vocab *Vocabulary) (*Matrix, error) {
	if len(docs) == 0 || vocab == nil || vocab.Len() == 0 {
		return nil, fmt.Errorf("tfidf fit: %w", internalerr.ErrNoContent)
	}
	idf := IDF(docs, vocab)
	b := newRowBuilder(vocab.Len(), len(docs))

	for _, doc := range docs {
		tf := make(map[int]float64)
		for _, tok := range doc {
			if j, ok := vocab.Index(tok); ok {
				tf[j]++
			}
		}
		cols := make([]int, 0, len(tf))
		for j := range tf {
			cols = append(cols, j)
		}
		sort.Ints(cols)

		vals := make([]float64, len(cols))
		var norm float64
		for k, j := range cols {
			w := tf[j] * idf[j]
			vals[k] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for k := range vals {
				vals[k] /= norm
			}
		}
		b.addRow(cols, vals)
	}
	return b.m, nil
}

// TopTerms returns the k terms with the largest column sums, descending, ties by term.
func TopTerms(m *Matrix, vocab *Vocabulary, k int) []TermScore {
	sums := m.ColSums()
	out := make([]TermScore, len(sums))
	for j, s := range sums {
		out[j] = TermScore{Term: vocab.Term(j), Score: s}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		return out[a].Term < out[b].Term
	})
	if k >= 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

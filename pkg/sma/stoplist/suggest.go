package stoplist

import "sort"

// Stats holds corpus statistics for one token.
type Stats struct {
	Token     string
	DF        int
	DFPercent float64
	NPMIMax   float64 // strongest association with any token, 0 when unknown
}

// Candidate is a suggested stopword.
type Candidate struct {
	Token     string  `json:"token"`
	DFPercent float64 `json:"df_percent"`
	Score     float64 `json:"score"`
}

// Thresholds defines criteria for stopword identification
type Thresholds struct {
	DFPercent float64 // e.g. 60: appears in 60% of documents
	NPMIMax   float64 // e.g. 0.15: weakly associated with every other token
}

// DefaultThresholds returns the standard suggestion thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{DFPercent: 60, NPMIMax: 0.15}
}

// DocumentStats counts per-document frequencies of every token, highest
// first, ties by token.
func DocumentStats(docs [][]string) []Stats {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			if tok == "" {
				continue
			}
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	out := make([]Stats, 0, len(df))
	for tok, n := range df {
		out = append(out, Stats{
			Token:     tok,
			DF:        n,
			DFPercent: 100 * float64(n) / float64(len(docs)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DF != out[j].DF {
			return out[i].DF > out[j].DF
		}
		return out[i].Token < out[j].Token
	})
	return out
}

// SuggestCandidates returns tokens that look like stopwords and are not
// already listed. A token qualifies when its DF percentage exceeds the
// threshold and, if association data is present, its strongest NPMI stays
// below the threshold. Results are ordered by score.
func (m *Manager) SuggestCandidates(stats []Stats, thresholds Thresholds) []Candidate {
	if thresholds == (Thresholds{}) {
		thresholds = DefaultThresholds()
	}

	var candidates []Candidate
	for _, s := range stats {
		if m.IsStop(s.Token) {
			continue // already a stopword
		}
		if s.DFPercent <= thresholds.DFPercent {
			continue
		}
		score := s.DFPercent / 100
		if s.NPMIMax != 0 {
			if s.NPMIMax >= thresholds.NPMIMax {
				continue
			}
			score = (score + (1 - s.NPMIMax)) / 2
		}
		candidates = append(candidates, Candidate{Token: s.Token, DFPercent: s.DFPercent, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Token < candidates[j].Token
	})
	return candidates
}

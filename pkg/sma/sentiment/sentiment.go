package sentiment

import (
	"strings"
	"unicode"
)

// Label classifies a polarity score.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// Record is the sentiment of one document.
type Record struct {
	Polarity float64
	Label    Label
}

// Summary counts documents per label.
type Summary struct {
	Positive int
	Negative int
	Neutral  int
	Mean     float64
}

// Total returns the number of documents counted.
func (s Summary) Total() int {
	return s.Positive + s.Negative + s.Neutral
}

// Counts returns the label counts keyed by label name. All three labels are always present.
func (s Summary) Counts() map[string]int {
	return map[string]int{
		string(Positive): s.Positive,
		string(Negative): s.Negative,
		string(Neutral):  s.Neutral,
	}
}

// Options tunes the scorer.
type Options struct {
	NegationWindow    int     // tokens looked back for a negation (default 3)
	PositiveThreshold float64 // polarity above this is positive (default 0.05)
	NegativeThreshold float64 // polarity below this is negative (default -0.05)
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{
		NegationWindow:    3,
		PositiveThreshold: 0.05,
		NegativeThreshold: -0.05,
	}
}

const negationFactor = -0.5

// Scorer computes lexicon-based polarity.
type Scorer struct {
	lex  *Lexicon
	opts Options
}

// NewScorer creates a scorer. A nil lexicon selects the built-in one.
func NewScorer(lex *Lexicon, opts Options) *Scorer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	if opts.NegationWindow <= 0 {
		opts.NegationWindow = DefaultOptions().NegationWindow
	}
	return &Scorer{lex: lex, opts: opts}
}

// Polarity scores a single document in [-1, 1]. Documents with no lexicon hits score 0.
func (s *Scorer) Polarity(text string) float64 {
	words := splitWords(text)

	var sum float64
	hits := 0
	boost := 1.0
	for i, w := range words {
		if m, ok := s.lex.intensifier(w); ok {
			boost *= m
			continue
		}
		v, ok := s.lex.Valence(w)
		if !ok {
			boost = 1.0
			continue
		}
		v *= boost
		boost = 1.0
		if s.negated(words, i) {
			v *= negationFactor
		}
		sum += v
		hits++
	}
	if hits == 0 {
		return 0
	}
	return clamp(sum / float64(hits))
}

func (s *Scorer) negated(words []string, i int) bool {
	start := i - s.opts.NegationWindow
	if start < 0 {
		start = 0
	}
	for j := start; j < i; j++ {
		if s.lex.isNegation(words[j]) {
			return true
		}
	}
	return false
}

// Classify maps a polarity to its label.
func (s *Scorer) Classify(polarity float64) Label {
	switch {
	case polarity > s.opts.PositiveThreshold:
		return Positive
	case polarity < s.opts.NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// ScoreAll scores docs in order and counts labels.
func (s *Scorer) ScoreAll(docs []string) ([]Record, Summary) {
	records := make([]Record, len(docs))
	var summary Summary
	var total float64
	for i, d := range docs {
		p := s.Polarity(d)
		label := s.Classify(p)
		records[i] = Record{Polarity: p, Label: label}
		total += p
		switch label {
		case Positive:
			summary.Positive++
		case Negative:
			summary.Negative++
		default:
			summary.Neutral++
		}
	}
	if len(docs) > 0 {
		summary.Mean = total / float64(len(docs))
	}
	return records, summary
}

// Polarities extracts the raw scores in document order.
func Polarities(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Polarity
	}
	return out
}

// splitWords lowercases text and splits it into runs of letters, digits and apostrophes.
func splitWords(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), "’", "'")
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'')
	})
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

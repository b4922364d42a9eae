package sentiment

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestPolaritySigns(t *testing.T) {
	s := NewScorer(nil, DefaultOptions())
	docs := []string{"good good bad", "bad terrible", "good great"}
	records, summary := s.ScoreAll(docs)

	if records[0].Polarity <= 0 {
		t.Errorf("doc0 polarity = %v, want > 0", records[0].Polarity)
	}
	if records[1].Polarity >= 0 {
		t.Errorf("doc1 polarity = %v, want < 0", records[1].Polarity)
	}
	if records[2].Polarity <= 0 {
		t.Errorf("doc2 polarity = %v, want > 0", records[2].Polarity)
	}
	if summary.Positive < 1 || summary.Negative < 1 {
		t.Errorf("summary = %+v, want at least one positive and one negative", summary)
	}
	if summary.Total() != len(docs) {
		t.Errorf("summary total = %d, want %d", summary.Total(), len(docs))
	}
}

func TestNegationAndIntensifier(t *testing.T) {
	s := NewScorer(nil, DefaultOptions())
	good := s.Polarity("good")
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"plain", "good", 0.5},
		{"negated", "this is not good", -0.25},
		{"negation out of window", "not that this was really good", 0.5 * 1.25},
		{"intensified", "very good", 0.65},
		{"no hits", "the quick brown fox", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Polarity(tt.text)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Polarity(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
	if good <= 0 {
		t.Fatalf("expected positive baseline, got %v", good)
	}
}

func TestPolarityClamped(t *testing.T) {
	s := NewScorer(nil, DefaultOptions())
	p := s.Polarity("extremely extremely extremely outstanding")
	if p > 1 || p < -1 {
		t.Fatalf("polarity %v out of range", p)
	}
}

func TestClassifyThresholds(t *testing.T) {
	s := NewScorer(nil, DefaultOptions())
	tests := []struct {
		p    float64
		want Label
	}{
		{0.06, Positive},
		{0.05, Neutral},
		{0, Neutral},
		{-0.05, Neutral},
		{-0.06, Negative},
	}
	for _, tt := range tests {
		if got := s.Classify(tt.p); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.p, got, tt.want)
		}
	}
}

func TestScoreAllEmpty(t *testing.T) {
	s := NewScorer(nil, DefaultOptions())
	records, summary := s.ScoreAll(nil)
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	counts := summary.Counts()
	if len(counts) != 3 {
		t.Fatalf("expected all three labels, got %v", counts)
	}
	if summary.Mean != 0 {
		t.Fatalf("expected zero mean, got %v", summary.Mean)
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lex.yaml")
	content := `valences:
  Shiny: 0.9
  dull: -0.4
intensifiers:
  mega: 2
negations: [nope]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write lexicon: %v", err)
	}
	lex, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if lex.Size() != 2 {
		t.Fatalf("expected 2 valences, got %d", lex.Size())
	}
	s := NewScorer(lex, DefaultOptions())
	if got := s.Polarity("shiny"); got != 0.9 {
		t.Errorf("Polarity(shiny) = %v", got)
	}
	if got := s.Polarity("nope dull"); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Polarity(nope dull) = %v, want 0.2", got)
	}
}

func TestParseLexiconRejectsOutOfRange(t *testing.T) {
	if _, err := ParseLexicon([]byte("valences:\n  wow: 3\n")); err == nil {
		t.Fatal("expected error for valence > 1")
	}
}

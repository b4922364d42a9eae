package stoplist

import (
	"math"
	"reflect"
	"testing"
)

func TestDocumentStats(t *testing.T) {
	docs := [][]string{
		{"lol", "great", "lol"},
		{"lol", "video"},
		{"great", "lol"},
		{"meh"},
	}
	stats := DocumentStats(docs)
	if len(stats) != 4 {
		t.Fatalf("expected 4 tokens, got %+v", stats)
	}
	if stats[0].Token != "lol" || stats[0].DF != 3 || stats[0].DFPercent != 75 {
		t.Errorf("top stat = %+v", stats[0])
	}
	var order []string
	for _, s := range stats {
		order = append(order, s.Token)
	}
	if want := []string{"lol", "great", "meh", "video"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestSuggestCandidatesDFOnly(t *testing.T) {
	m := NewManager([]string{"the"})
	stats := []Stats{
		{Token: "the", DFPercent: 95},
		{Token: "lol", DFPercent: 80},
		{Token: "video", DFPercent: 65},
		{Token: "guitar", DFPercent: 20},
	}
	got := m.SuggestCandidates(stats, Thresholds{})
	want := []Candidate{
		{Token: "lol", DFPercent: 80, Score: 0.8},
		{Token: "video", DFPercent: 65, Score: 0.65},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("candidates = %+v, want %+v", got, want)
	}
}

func TestSuggestCandidatesAssociationGate(t *testing.T) {
	m := NewManager(nil)
	stats := []Stats{
		{Token: "lol", DFPercent: 80, NPMIMax: 0.05},
		{Token: "music", DFPercent: 80, NPMIMax: 0.6},
	}
	got := m.SuggestCandidates(stats, DefaultThresholds())
	if len(got) != 1 || got[0].Token != "lol" {
		t.Fatalf("candidates = %+v", got)
	}
	if want := (0.8 + 0.95) / 2; math.Abs(got[0].Score-want) > 1e-12 {
		t.Errorf("score = %f, want %f", got[0].Score, want)
	}
}

package tfidf

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/copyninja277/Sma-app/pkg/sma/ingest"
	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
	"github.com/copyninja277/Sma-app/pkg/sma/stoplist"
)

func tokenize(docs ...string) [][]string {
	return ingest.NewTokenizer(stoplist.English()).TokenizeAll(docs)
}

func TestBuildVocabularyOrderAndCap(t *testing.T) {
	docs := [][]string{
		{"zebra", "apple", "apple", "mango"},
		{"apple", "mango", "kiwi"},
	}
	v, err := BuildVocabulary(docs, VocabOptions{MaxFeatures: 3})
	if err != nil {
		t.Fatalf("BuildVocabulary: %v", err)
	}
	// apple=3, mango=2, then kiwi and zebra tie at 1; kiwi wins by term
	want := []string{"apple", "kiwi", "mango"}
	got := v.Terms()
	if len(got) != len(want) {
		t.Fatalf("terms = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("term[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if _, ok := v.Index("zebra"); ok {
		t.Error("zebra should have been capped out")
	}
}

func TestBuildVocabularyDFFilters(t *testing.T) {
	docs := [][]string{{"common", "rare"}, {"common", "mid"}, {"common", "mid"}}
	v, err := BuildVocabulary(docs, VocabOptions{MinDF: 2, MaxDFRatio: 0.9})
	if err != nil {
		t.Fatalf("BuildVocabulary: %v", err)
	}
	if v.Len() != 1 || v.Term(0) != "mid" {
		t.Fatalf("terms = %v, want [mid]", v.Terms())
	}
}

func TestDegenerateCorpus(t *testing.T) {
	docs := tokenize("the the a", "a the")
	_, err := BuildVocabulary(docs, VocabOptions{MaxFeatures: 1000})
	if !errors.Is(err, internalerr.ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestFitRowsNormalized(t *testing.T) {
	docs := tokenize("good good bad", "bad terrible", "good great")
	v, err := BuildVocabulary(docs, VocabOptions{MaxFeatures: 1000})
	if err != nil {
		t.Fatalf("BuildVocabulary: %v", err)
	}
	m, err := Fit(docs, v)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	r, c := m.Dims()
	if r != 3 || c != v.Len() {
		t.Fatalf("dims = %dx%d, want 3x%d", r, c, v.Len())
	}
	for i := 0; i < r; i++ {
		row := mat.Row(nil, i, m)
		if n := mat.Norm(mat.NewVecDense(len(row), row), 2); math.Abs(n-1) > 1e-9 {
			t.Errorf("row %d norm = %v, want 1", i, n)
		}
	}
	// "good" appears twice in doc0 and once in doc2 with equal idf
	g, _ := v.Index("good")
	if m.At(0, g) <= m.At(2, g)*0.5 {
		t.Errorf("unexpected good weights %v %v", m.At(0, g), m.At(2, g))
	}
	tr := m.T()
	if tr.At(g, 0) != m.At(0, g) {
		t.Error("transpose mismatch")
	}
}

func TestTermDocCSC(t *testing.T) {
	docs := tokenize("good good bad", "bad terrible", "good great")
	v, err := BuildVocabulary(docs, VocabOptions{MaxFeatures: 1000})
	if err != nil {
		t.Fatalf("BuildVocabulary: %v", err)
	}
	m, err := Fit(docs, v)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	csc := m.TermDocCSC()
	r, c := csc.Dims()
	if r != v.Len() || c != 3 {
		t.Fatalf("dims = %dx%d, want %dx3", r, c, v.Len())
	}
	if !mat.Equal(csc, m.T()) {
		t.Fatal("csc view differs from transpose")
	}
	if csc.NNZ() != m.NNZ() {
		t.Errorf("nnz = %d, want %d", csc.NNZ(), m.NNZ())
	}
}

func TestIDFSmoothing(t *testing.T) {
	docs := [][]string{{"a1", "b1"}, {"a1"}}
	v, _ := BuildVocabulary(docs, VocabOptions{})
	idf := IDF(docs, v)
	a, _ := v.Index("a1")
	b, _ := v.Index("b1")
	if math.Abs(idf[a]-1) > 1e-12 {
		t.Errorf("idf(a1) = %v, want 1", idf[a])
	}
	if want := math.Log(3.0/2.0) + 1; math.Abs(idf[b]-want) > 1e-12 {
		t.Errorf("idf(b1) = %v, want %v", idf[b], want)
	}
}

func TestTopTermsDescending(t *testing.T) {
	var raw []string
	for i := 0; i < 30; i++ {
		raw = append(raw, "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu nu xi omicron pi rho sigma tau upsilon phi chi psi omega")
	}
	raw = append(raw, "alpha alpha alpha beta")
	docs := tokenize(raw...)
	v, err := BuildVocabulary(docs, VocabOptions{MaxFeatures: 1000})
	if err != nil {
		t.Fatalf("BuildVocabulary: %v", err)
	}
	m, err := Fit(docs, v)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	top := TopTerms(m, v, 20)
	if len(top) != 20 {
		t.Fatalf("expected 20 terms, got %d", len(top))
	}
	for i, ts := range top {
		if ts.Score < 0 {
			t.Errorf("negative score at %d: %v", i, ts)
		}
		if i > 0 && ts.Score > top[i-1].Score {
			t.Errorf("scores not descending at %d: %v > %v", i, ts.Score, top[i-1].Score)
		}
	}
	if top[0].Term != "alpha" {
		t.Errorf("top term = %q, want alpha", top[0].Term)
	}
}

func TestTermScoreJSON(t *testing.T) {
	data, err := json.Marshal(TermScore{Term: "good", Score: 1.5})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `["good",1.5]` {
		t.Fatalf("got %s", data)
	}
	var back TermScore
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Term != "good" || back.Score != 1.5 {
		t.Fatalf("round trip = %+v", back)
	}
}

package topics

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"

	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
)

// Fitting methods.
const (
	MethodOnline = "online" // stochastic collapsed variational Bayes
	MethodBatch  = "batch"  // batch variational Bayes
)

// Options configures the topic model.
type Options struct {
	Method     string  // MethodOnline (default) or MethodBatch
	NumTopics  int     // latent topics (default 5)
	MaxIter    int     // outer EM passes (default 10)
	MaxEStep   int     // per-document inner iterations (default 100)
	Tolerance  float64 // mean change in doc-topic parameters that ends the E-step (default 1e-3)
	DocPrior   float64 // alpha, 0 means 1/NumTopics
	TopicPrior float64 // eta, 0 means 1/NumTopics
	Seed       int64   // random seed (default 42)
}

// DefaultOptions returns the standard model settings.
func DefaultOptions() Options {
	return Options{
		Method:    MethodOnline,
		NumTopics: 5,
		MaxIter:   10,
		MaxEStep:  100,
		Tolerance: 1e-3,
		Seed:      42,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Method == "" {
		o.Method = d.Method
	}
	if o.NumTopics <= 0 {
		o.NumTopics = d.NumTopics
	}
	if o.MaxIter <= 0 {
		o.MaxIter = d.MaxIter
	}
	if o.MaxEStep <= 0 {
		o.MaxEStep = d.MaxEStep
	}
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	if o.DocPrior <= 0 {
		o.DocPrior = 1 / float64(o.NumTopics)
	}
	if o.TopicPrior <= 0 {
		o.TopicPrior = 1 / float64(o.NumTopics)
	}
	return o
}

// Model holds the fitted topic-word parameters.
type Model struct {
	components *mat.Dense // NumTopics × terms
}

// Components returns the topic-word matrix.
func (m *Model) Components() mat.Matrix {
	return m.components
}

const gammaShape = 100.0

// Fit runs LDA over the document-term matrix x.
// The result depends only on x and opts; the fit is single threaded.
func Fit(ctx context.Context, x mat.Matrix, opts Options) (*Model, error) {
	opts = opts.withDefaults()
	nDocs, nTerms := x.Dims()
	if nDocs == 0 || nTerms == 0 {
		return nil, fmt.Errorf("lda fit: %w: empty matrix", internalerr.ErrNoContent)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch opts.Method {
	case MethodOnline:
		return fitOnline(ctx, x, opts)
	case MethodBatch:
		return fitBatch(ctx, x, opts)
	default:
		return nil, fmt.Errorf("lda fit: %w: unknown method %q", internalerr.ErrInvalidConfig, opts.Method)
	}
}

// fitBatch runs batch variational Bayes in the manner of Hoffman et al.
func fitBatch(ctx context.Context, x mat.Matrix, opts Options) (*Model, error) {
	_, nTerms := x.Dims()
	rows := sparseRows(x)
	k := opts.NumTopics
	rng := rand.New(rand.NewSource(opts.Seed))

	lambda := mat.NewDense(k, nTerms, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < nTerms; j++ {
			lambda.Set(i, j, sampleGamma(rng, gammaShape, 1/gammaShape))
		}
	}
	expElogBeta := dirichletExpectation(lambda)

	for iter := 0; iter < opts.MaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sstats := mat.NewDense(k, nTerms, nil)
		for _, row := range rows {
			eStep(rng, row, expElogBeta, sstats, opts)
		}
		for i := 0; i < k; i++ {
			for j := 0; j < nTerms; j++ {
				lambda.Set(i, j, opts.TopicPrior+sstats.At(i, j)*expElogBeta.At(i, j))
			}
		}
		expElogBeta = dirichletExpectation(lambda)
	}
	return &Model{components: lambda}, nil
}

type sparseRow struct {
	ids  []int
	cnts []float64
}

func sparseRows(x mat.Matrix) []sparseRow {
	r, c := x.Dims()
	rows := make([]sparseRow, r)
	nz, ok := x.(mat.RowNonZeroDoer)
	for i := 0; i < r; i++ {
		var row sparseRow
		if ok {
			nz.DoRowNonZero(i, func(_, j int, v float64) {
				if v != 0 {
					row.ids = append(row.ids, j)
					row.cnts = append(row.cnts, v)
				}
			})
		} else {
			for j := 0; j < c; j++ {
				if v := x.At(i, j); v != 0 {
					row.ids = append(row.ids, j)
					row.cnts = append(row.cnts, v)
				}
			}
		}
		rows[i] = row
	}
	return rows
}

// eStep fits one document's topic proportions and adds its sufficient statistics.
func eStep(rng *rand.Rand, row sparseRow, expElogBeta, sstats *mat.Dense, opts Options) {
	k := opts.NumTopics
	gamma := make([]float64, k)
	for i := range gamma {
		gamma[i] = sampleGamma(rng, gammaShape, 1/gammaShape)
	}
	if len(row.ids) == 0 {
		return
	}
	expElogTheta := expDirichlet(gamma)
	normPhi := make([]float64, len(row.ids))
	computeNormPhi(normPhi, expElogTheta, expElogBeta, row.ids)

	last := make([]float64, k)
	for it := 0; it < opts.MaxEStep; it++ {
		copy(last, gamma)
		for t := 0; t < k; t++ {
			var s float64
			for n, j := range row.ids {
				s += row.cnts[n] / normPhi[n] * expElogBeta.At(t, j)
			}
			gamma[t] = opts.DocPrior + expElogTheta[t]*s
		}
		expElogTheta = expDirichlet(gamma)
		computeNormPhi(normPhi, expElogTheta, expElogBeta, row.ids)

		var change float64
		for t := range gamma {
			change += math.Abs(gamma[t] - last[t])
		}
		if change/float64(k) < opts.Tolerance {
			break
		}
	}

	for t := 0; t < k; t++ {
		for n, j := range row.ids {
			sstats.Set(t, j, sstats.At(t, j)+expElogTheta[t]*row.cnts[n]/normPhi[n])
		}
	}
}

const phiEpsilon = 1e-100

func computeNormPhi(dst, expElogTheta []float64, expElogBeta *mat.Dense, ids []int) {
	for n, j := range ids {
		var s float64
		for t, th := range expElogTheta {
			s += th * expElogBeta.At(t, j)
		}
		dst[n] = s + phiEpsilon
	}
}

// dirichletExpectation returns exp(E[log beta]) for every row of a.
func dirichletExpectation(a *mat.Dense) *mat.Dense {
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		out.SetRow(i, expDirichlet(a.RawRowView(i)))
	}
	return out
}

func expDirichlet(alpha []float64) []float64 {
	var sum float64
	for _, a := range alpha {
		sum += a
	}
	psiSum := mathext.Digamma(sum)
	out := make([]float64, len(alpha))
	for i, a := range alpha {
		out[i] = math.Exp(mathext.Digamma(a) - psiSum)
	}
	return out
}

// sampleGamma draws from Gamma(shape, scale) using Marsaglia and Tsang's method (shape >= 1).
func sampleGamma(rng *rand.Rand, shape, scale float64) float64 {
	d := shape - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if math.Log(u) < 0.5*x*x+d-d*v+d*math.Log(v) {
			return d * v * scale
		}
	}
}

// Topic is one latent topic's strongest terms, strongest first.
type Topic struct {
	Terms   []string
	Weights []float64
}

// Vocabulary resolves column indices to terms.
type Vocabulary interface {
	Term(i int) string
	Len() int
}

// Topics returns the n strongest terms of every topic in descending weight order.
func (m *Model) Topics(vocab Vocabulary, n int) []Topic {
	k, nTerms := m.components.Dims()
	if n > nTerms {
		n = nTerms
	}
	out := make([]Topic, k)
	for t := 0; t < k; t++ {
		row := m.components.RawRowView(t)
		idx := make([]int, nTerms)
		for j := range idx {
			idx[j] = j
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return row[idx[a]] > row[idx[b]]
		})
		topic := Topic{
			Terms:   make([]string, n),
			Weights: make([]float64, n),
		}
		for i := 0; i < n; i++ {
			topic.Terms[i] = vocab.Term(idx[i])
			topic.Weights[i] = row[idx[i]]
		}
		out[t] = topic
	}
	return out
}

// TermLists flattens topics to their term lists.
func TermLists(topics []Topic) [][]string {
	out := make([][]string, len(topics))
	for i, t := range topics {
		out[i] = t.Terms
	}
	return out
}

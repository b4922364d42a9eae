package topics

import (
	"context"
	"fmt"

	"github.com/james-bowman/nlp"
	"github.com/james-bowman/sparse"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// termDocViewer is implemented by matrices that can present themselves as
// terms × documents without copying.
type termDocViewer interface {
	TermDocCSC() *sparse.CSC
}

// fitOnline runs the SCVB0 learner from james-bowman/nlp. nlp works on
// terms × documents, so x is transposed on the way in. A seeded source and a
// single worker keep runs reproducible.
func fitOnline(ctx context.Context, x mat.Matrix, opts Options) (*Model, error) {
	var td mat.Matrix
	if v, ok := x.(termDocViewer); ok {
		td = v.TermDocCSC()
	} else {
		td = mat.DenseCopyOf(x.T())
	}

	lda := nlp.NewLatentDirichletAllocation(opts.NumTopics)
	lda.Iterations = opts.MaxIter
	lda.Alpha = opts.DocPrior
	lda.Eta = opts.TopicPrior
	lda.Processes = 1
	lda.Rnd = rand.New(rand.NewSource(uint64(opts.Seed)))

	if _, err := lda.FitTransform(td); err != nil {
		return nil, fmt.Errorf("lda fit: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Model{components: mat.DenseCopyOf(lda.Components())}, nil
}

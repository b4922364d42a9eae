package tfidf

import (
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a read-only document×term matrix in compressed sparse row form.
// It satisfies mat.Matrix and mat.RowNonZeroDoer.
type Matrix struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []float64
}

var (
	_ mat.Matrix         = (*Matrix)(nil)
	_ mat.RowNonZeroDoer = (*Matrix)(nil)
)

// Dims returns the number of documents and terms.
func (m *Matrix) Dims() (r, c int) {
	return m.rows, m.cols
}

// At returns the weight at document i, term j.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(mat.ErrIndexOutOfRange)
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	k := lo + sort.SearchInts(m.indices[lo:hi], j)
	if k < hi && m.indices[k] == j {
		return m.data[k]
	}
	return 0
}

// T returns the implicit transpose.
func (m *Matrix) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// TermDocCSC returns the transpose as a terms × documents CSC matrix that
// shares storage with m.
func (m *Matrix) TermDocCSC() *sparse.CSC {
	return sparse.NewCSC(m.cols, m.rows, m.indptr, m.indices, m.data)
}

// DoRowNonZero calls fn for every stored value of row i in column order.
func (m *Matrix) DoRowNonZero(i int, fn func(i, j int, v float64)) {
	for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
		fn(i, m.indices[k], m.data[k])
	}
}

// NNZ returns the number of stored values.
func (m *Matrix) NNZ() int {
	return len(m.data)
}

// ColSums returns the sum of each column.
func (m *Matrix) ColSums() []float64 {
	sums := make([]float64, m.cols)
	for k, j := range m.indices {
		sums[j] += m.data[k]
	}
	return sums
}

// rowBuilder appends rows with strictly increasing column indices.
type rowBuilder struct {
	m *Matrix
}

func newRowBuilder(cols, rowsHint int) *rowBuilder {
	return &rowBuilder{m: &Matrix{
		cols:   cols,
		indptr: make([]int, 1, rowsHint+1),
	}}
}

func (b *rowBuilder) addRow(cols []int, vals []float64) {
	b.m.indices = append(b.m.indices, cols...)
	b.m.data = append(b.m.data, vals...)
	b.m.rows++
	b.m.indptr = append(b.m.indptr, len(b.m.data))
}

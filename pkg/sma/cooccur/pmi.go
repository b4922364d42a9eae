package cooccur

import (
	"math"
	"sort"
)

// DefaultEpsilon is the smoothing constant used by Associations.
const DefaultEpsilon = 0.01

// Calculator computes pointwise mutual information from document counts.
type Calculator struct {
	epsilon float64
}

// NewCalculator creates a calculator with the given smoothing constant.
// Non-positive values select 1.0.
func NewCalculator(epsilon float64) *Calculator {
	if epsilon <= 0 {
		epsilon = 1.0
	}
	return &Calculator{epsilon: epsilon}
}

// PMI returns log((N_ab + ε) * N / ((N_a + ε)(N_b + ε))).
func (c *Calculator) PMI(nAB, nA, nB, n int) float64 {
	if n == 0 {
		return 0
	}
	num := (float64(nAB) + c.epsilon) * float64(n)
	den := (float64(nA) + c.epsilon) * (float64(nB) + c.epsilon)
	return math.Log(num / den)
}

// NPMI normalizes PMI by -log P(a,b) into [-1, 1]. A pair present in
// every document scores 1.
func (c *Calculator) NPMI(nAB, nA, nB, n int) float64 {
	if n == 0 || nAB == 0 {
		return 0
	}
	pAB := float64(nAB) / float64(n)
	if pAB >= 1 {
		return 1
	}
	v := c.PMI(nAB, nA, nB, n) / -math.Log(pAB)
	return math.Max(-1, math.Min(1, v))
}

// Association is an edge scored by normalized PMI.
type Association struct {
	Source string
	Target string
	Count  int
	NPMI   float64
}

// Associations scores every edge by NPMI and returns the k strongest,
// descending, ties in edge insertion order. Graphs assembled with Increment
// alone carry no document counts and score 0.
func (g *Graph) Associations(k int) []Association {
	calc := NewCalculator(DefaultEpsilon)
	edges := g.Edges()
	out := make([]Association, len(edges))
	for i, e := range edges {
		out[i] = Association{
			Source: e.Source,
			Target: e.Target,
			Count:  e.Weight,
			NPMI:   calc.NPMI(e.Weight, g.df[e.Source], g.df[e.Target], g.docs),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NPMI > out[j].NPMI
	})
	if k >= 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// MaxNPMI returns each node's strongest association score.
func (g *Graph) MaxNPMI() map[string]float64 {
	out := make(map[string]float64, len(g.terms))
	for _, a := range g.Associations(-1) {
		for _, t := range []string{a.Source, a.Target} {
			if cur, ok := out[t]; !ok || a.NPMI > cur {
				out[t] = a.NPMI
			}
		}
	}
	return out
}

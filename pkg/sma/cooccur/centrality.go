package cooccur

import "sort"

// Centrality is a node's normalized degree.
type Centrality struct {
	Term  string
	Score float64
}

// DegreeCentrality returns degree/(n-1) for every node in insertion order.
// A graph with a single node scores 0.
func DegreeCentrality(g *Graph) []Centrality {
	n := g.Len()
	out := make([]Centrality, n)
	for i, term := range g.terms {
		var score float64
		if n > 1 {
			score = float64(g.Degree(term)) / float64(n-1)
		}
		out[i] = Centrality{Term: term, Score: score}
	}
	return out
}

// TopCentralities returns the k most central nodes, descending, ties in insertion order.
func TopCentralities(g *Graph, k int) []Centrality {
	all := DegreeCentrality(g)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})
	if k >= 0 && len(all) > k {
		all = all[:k]
	}
	return all
}

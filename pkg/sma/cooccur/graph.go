package cooccur

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Edge is an undirected weighted term pair.
type Edge struct {
	Source string
	Target string
	Weight int
}

// Graph is a weighted undirected term co-occurrence graph that remembers
// node and edge insertion order.
type Graph struct {
	g     *simple.WeightedUndirectedGraph
	ids   map[string]int64
	terms []string
	order [][2]int64
	df    map[string]int
	docs  int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		g:   simple.NewWeightedUndirectedGraph(0, 0),
		ids: make(map[string]int64),
		df:  make(map[string]int),
	}
}

// TopTerms returns the n most frequent tokens across docs, ties in first-seen order.
func TopTerms(docs [][]string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, doc := range docs {
		for _, tok := range doc {
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if n >= 0 && len(order) > n {
		order = order[:n]
	}
	return order
}

// Build links every pair of distinct top terms that share a document.
// Each document contributes at most one to a pair's weight. maxDocTerms caps
// the distinct top terms paired per document (0 = no cap).
func Build(docs [][]string, top []string, maxDocTerms int) *Graph {
	keep := make(map[string]struct{}, len(top))
	for _, t := range top {
		keep[t] = struct{}{}
	}

	g := NewGraph()
	for _, doc := range docs {
		seen := make(map[string]struct{})
		var filtered []string
		for _, tok := range doc {
			if _, ok := keep[tok]; !ok {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			g.df[tok]++
			filtered = append(filtered, tok)
		}
		g.docs++
		if maxDocTerms > 0 && len(filtered) > maxDocTerms {
			filtered = filtered[:maxDocTerms]
		}
		for i := 0; i < len(filtered); i++ {
			for j := i + 1; j < len(filtered); j++ {
				g.Increment(filtered[i], filtered[j])
			}
		}
	}
	return g
}

func (g *Graph) node(term string) int64 {
	if id, ok := g.ids[term]; ok {
		return id
	}
	id := int64(len(g.terms))
	g.ids[term] = id
	g.terms = append(g.terms, term)
	g.g.AddNode(simple.Node(id))
	return id
}

// Increment adds one to the weight of the edge between a and b, creating it
// with weight 1 if needed. Self pairs are ignored.
func (g *Graph) Increment(a, b string) {
	if a == b {
		return
	}
	u, v := g.node(a), g.node(b)
	w, ok := g.g.Weight(u, v)
	if !ok {
		g.order = append(g.order, [2]int64{u, v})
		w = 0
	}
	g.g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(u), T: simple.Node(v), W: w + 1})
}

// Nodes returns the terms in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.terms))
	copy(out, g.terms)
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.terms)
}

// Edges returns every edge once, in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.order))
	for _, e := range g.order {
		w, _ := g.g.Weight(e[0], e[1])
		out = append(out, Edge{
			Source: g.terms[e[0]],
			Target: g.terms[e[1]],
			Weight: int(w),
		})
	}
	return out
}

// Weight returns the weight of the edge between a and b.
func (g *Graph) Weight(a, b string) (int, bool) {
	u, ok1 := g.ids[a]
	v, ok2 := g.ids[b]
	if !ok1 || !ok2 || u == v {
		return 0, false
	}
	w, ok := g.g.Weight(u, v)
	return int(w), ok
}

// Degree returns the number of neighbours of term.
func (g *Graph) Degree(term string) int {
	id, ok := g.ids[term]
	if !ok {
		return 0
	}
	return g.g.From(id).Len()
}

// ID returns the node id of term.
func (g *Graph) ID(term string) (int64, bool) {
	id, ok := g.ids[term]
	return id, ok
}

// Term returns the term of node id.
func (g *Graph) Term(id int64) string {
	return g.terms[id]
}

// DocFreq returns the number of built documents containing term.
func (g *Graph) DocFreq(term string) int {
	return g.df[term]
}

// Docs returns the number of documents the graph was built from.
func (g *Graph) Docs() int {
	return g.docs
}

// Weighted exposes the underlying gonum graph.
func (g *Graph) Weighted() graph.WeightedUndirected {
	return g.g
}

package sma

import (
	"time"

	"github.com/copyninja277/Sma-app/pkg/sma/cooccur"
	"github.com/copyninja277/Sma-app/pkg/sma/tfidf"
)

// TermScore is a [term, score] pair in the report.
type TermScore = tfidf.TermScore

// Report is the result of one analysis.
type Report struct {
	ID               string         `json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	Documents        int            `json:"documents"`
	Sentiments       []float64      `json:"sentiments"`
	SentimentSummary map[string]int `json:"sentiment_summary"`
	SentimentMean    float64        `json:"sentiment_mean"`
	Topics           [][]string     `json:"topics"`
	TFIDF            []TermScore    `json:"tfidf"`
	Network          Network        `json:"network"`
	Centralities     []TermScore    `json:"centralities"`
	Associations     []Association  `json:"associations"`
	WordCloud        string         `json:"wordcloud"`
	CooccurrenceImg  string         `json:"cooccurrence_img"`
}

// Network is the co-occurrence graph in node-link form.
type Network struct {
	Nodes []NetworkNode `json:"nodes"`
	Edges []NetworkEdge `json:"edges"`
}

// NetworkNode is one term in the graph.
type NetworkNode struct {
	ID string `json:"id"`
}

// NetworkEdge is one weighted co-occurrence.
type NetworkEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// Association is a co-occurring pair scored by normalized PMI.
type Association struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Count  int     `json:"count"`
	NPMI   float64 `json:"npmi"`
}

func networkOf(g *cooccur.Graph) Network {
	nodes := g.Nodes()
	edges := g.Edges()
	n := Network{
		Nodes: make([]NetworkNode, len(nodes)),
		Edges: make([]NetworkEdge, len(edges)),
	}
	for i, term := range nodes {
		n.Nodes[i] = NetworkNode{ID: term}
	}
	for i, e := range edges {
		n.Edges[i] = NetworkEdge{Source: e.Source, Target: e.Target, Weight: e.Weight}
	}
	return n
}

func centralityScores(cs []cooccur.Centrality) []TermScore {
	out := make([]TermScore, len(cs))
	for i, c := range cs {
		out[i] = TermScore{Term: c.Term, Score: c.Score}
	}
	return out
}

func associationsOf(as []cooccur.Association) []Association {
	out := make([]Association, len(as))
	for i, a := range as {
		out[i] = Association{Source: a.Source, Target: a.Target, Count: a.Count, NPMI: a.NPMI}
	}
	return out
}

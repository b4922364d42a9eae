package sma

import (
	"github.com/copyninja277/Sma-app/pkg/sma/cooccur"
	"github.com/copyninja277/Sma-app/pkg/sma/ingest"
	"github.com/copyninja277/Sma-app/pkg/sma/stoplist"
)

// SuggestStopwords ranks corpus tokens that behave like stopwords: present
// in most comments and weakly associated with every co-occurring term.
// Tokens already in stops are skipped. graphTerms bounds the association
// graph as in Analyze.
func SuggestStopwords(raw []string, stops *stoplist.Manager, graphTerms int, th stoplist.Thresholds) []stoplist.Candidate {
	docs := ingest.GraphTokens(ingest.Normalize(ingest.Clean(raw)))
	if len(docs) == 0 {
		return nil
	}
	stats := stoplist.DocumentStats(docs)

	g := cooccur.Build(docs, cooccur.TopTerms(docs, graphTerms), 0)
	best := g.MaxNPMI()
	for i := range stats {
		stats[i].NPMIMax = best[stats[i].Token]
	}
	return stops.SuggestCandidates(stats, th)
}

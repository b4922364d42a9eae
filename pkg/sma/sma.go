package sma

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/copyninja277/Sma-app/pkg/sma/config"
	"github.com/copyninja277/Sma-app/pkg/sma/cooccur"
	"github.com/copyninja277/Sma-app/pkg/sma/ingest"
	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
	"github.com/copyninja277/Sma-app/pkg/sma/layout"
	"github.com/copyninja277/Sma-app/pkg/sma/render"
	"github.com/copyninja277/Sma-app/pkg/sma/sentiment"
	"github.com/copyninja277/Sma-app/pkg/sma/stoplist"
	"github.com/copyninja277/Sma-app/pkg/sma/tfidf"
	"github.com/copyninja277/Sma-app/pkg/sma/topics"
)

// Analyzer runs the comment analysis pipeline. It holds only read-only
// configuration and is safe for concurrent use.
type Analyzer struct {
	opts Options
	log  zerolog.Logger
}

// Options configures an Analyzer. Zero values select the defaults.
type Options struct {
	Tokenizer       *ingest.Tokenizer
	Scorer          *sentiment.Scorer
	Vocab           tfidf.VocabOptions
	TopKeywords     int
	Topics          topics.Options
	TopicTerms      int
	GraphTerms      int
	MaxDocTerms     int
	TopCentralities int
	TopAssociations int
	Layout          layout.Options
	Cloud           render.CloudOptions
	Network         render.NetworkOptions
	SkipImages      bool
	Logger          *zerolog.Logger
	Now             func() time.Time
}

// DefaultOptions returns the standard pipeline settings.
func DefaultOptions() Options {
	return Options{
		Tokenizer:       ingest.NewTokenizer(stoplist.English()),
		Scorer:          sentiment.NewScorer(nil, sentiment.DefaultOptions()),
		Vocab:           tfidf.VocabOptions{MaxFeatures: 1000},
		TopKeywords:     20,
		Topics:          topics.DefaultOptions(),
		TopicTerms:      10,
		GraphTerms:      100,
		TopCentralities: 10,
		TopAssociations: 10,
		Layout:          layout.DefaultOptions(),
		Cloud:           render.DefaultCloudOptions(),
		Network:         render.DefaultNetworkOptions(),
	}
}

// OptionsFromConfig builds options from loaded configuration.
func OptionsFromConfig(cfg config.Config, comp *config.Components) Options {
	a := cfg.Analysis
	opts := DefaultOptions()
	opts.Tokenizer = comp.Tokenizer
	opts.Scorer = sentiment.NewScorer(comp.Lexicon, sentiment.Options{
		NegationWindow:    cfg.Sentiment.NegationWindow,
		PositiveThreshold: cfg.Sentiment.PositiveThreshold,
		NegativeThreshold: cfg.Sentiment.NegativeThreshold,
	})
	opts.Vocab = tfidf.VocabOptions{MaxFeatures: a.MaxFeatures, MinDF: a.MinDF, MaxDFRatio: a.MaxDFRatio}
	opts.TopKeywords = a.TopKeywords
	opts.Topics.Method = a.TopicMethod
	opts.Topics.NumTopics = a.NumTopics
	opts.Topics.MaxIter = a.TopicIterations
	opts.Topics.Seed = a.Seed
	opts.TopicTerms = a.TopicTerms
	opts.GraphTerms = a.GraphTerms
	opts.MaxDocTerms = a.MaxDocTerms
	opts.TopCentralities = a.TopCentralities
	opts.TopAssociations = a.TopAssociations
	opts.Layout.Spacing = a.LayoutSpacing
	opts.Layout.Iterations = a.LayoutIterations
	opts.Layout.Seed = a.Seed
	opts.Cloud.MaxWords = a.WordCloudWords
	opts.Cloud.Seed = a.Seed
	opts.SkipImages = !a.RenderImages
	return opts
}

// New creates an Analyzer.
func New(opts Options) *Analyzer {
	d := DefaultOptions()
	if opts.Tokenizer == nil {
		opts.Tokenizer = d.Tokenizer
	}
	if opts.Scorer == nil {
		opts.Scorer = d.Scorer
	}
	if opts.Vocab.MaxFeatures <= 0 {
		opts.Vocab.MaxFeatures = d.Vocab.MaxFeatures
	}
	if opts.TopKeywords <= 0 {
		opts.TopKeywords = d.TopKeywords
	}
	if opts.TopicTerms <= 0 {
		opts.TopicTerms = d.TopicTerms
	}
	if opts.GraphTerms <= 0 {
		opts.GraphTerms = d.GraphTerms
	}
	if opts.TopCentralities <= 0 {
		opts.TopCentralities = d.TopCentralities
	}
	if opts.TopAssociations <= 0 {
		opts.TopAssociations = d.TopAssociations
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Analyzer{opts: opts, log: log.With().Str("component", "analyzer").Logger()}
}

// Analyze runs every stage over docs and assembles the report. Blank
// documents are dropped first; if none remain the call fails with
// internalerr.ErrInvalidInput. A corpus with no usable vocabulary fails with
// internalerr.ErrNoContent. Image rendering failures only leave the image empty.
func (a *Analyzer) Analyze(ctx context.Context, raw []string) (*Report, error) {
	docs := ingest.Clean(raw)
	if len(docs) == 0 {
		return nil, fmt.Errorf("analyze: %w: no non-empty documents", internalerr.ErrInvalidInput)
	}
	graphTokens := ingest.GraphTokens(ingest.Normalize(docs))

	report := &Report{
		ID:        ulid.Make().String(),
		CreatedAt: a.opts.Now().UTC(),
		Documents: len(docs),
	}
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer a.timed("sentiment", time.Now())
		records, summary := a.opts.Scorer.ScoreAll(docs)
		report.Sentiments = sentiment.Polarities(records)
		report.SentimentSummary = summary.Counts()
		report.SentimentMean = summary.Mean
		return nil
	})
	g.Go(func() error {
		return a.keywords(gctx, docs, report)
	})
	g.Go(func() error {
		return a.network(gctx, graphTokens, report)
	})
	if !a.opts.SkipImages {
		g.Go(func() error {
			defer a.timed("wordcloud", time.Now())
			img, err := render.WordCloud(render.Frequencies(graphTokens), a.opts.Cloud)
			if err != nil {
				a.log.Warn().Err(err).Msg("word cloud rendering failed")
				return nil
			}
			report.WordCloud = render.EncodeBase64(img)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.log.Info().
		Str("id", report.ID).
		Int("documents", report.Documents).
		Int("nodes", len(report.Network.Nodes)).
		Int("edges", len(report.Network.Edges)).
		Dur("took", time.Since(start)).
		Msg("analysis complete")
	return report, nil
}

// keywords runs vocabulary, tf-idf and topic stages.
func (a *Analyzer) keywords(ctx context.Context, docs []string, report *Report) error {
	defer a.timed("keywords", time.Now())
	tokens := a.opts.Tokenizer.TokenizeAll(docs)
	vocab, err := tfidf.BuildVocabulary(tokens, a.opts.Vocab)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	matrix, err := tfidf.Fit(tokens, vocab)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	report.TFIDF = tfidf.TopTerms(matrix, vocab, a.opts.TopKeywords)

	model, err := topics.Fit(ctx, matrix, a.opts.Topics)
	if err != nil {
		return fmt.Errorf("analyze: topics: %w", err)
	}
	report.Topics = topics.TermLists(model.Topics(vocab, a.opts.TopicTerms))
	return nil
}

// network runs graph, centrality, layout and diagram stages.
func (a *Analyzer) network(ctx context.Context, graphTokens [][]string, report *Report) error {
	defer a.timed("network", time.Now())
	top := cooccur.TopTerms(graphTokens, a.opts.GraphTerms)
	g := cooccur.Build(graphTokens, top, a.opts.MaxDocTerms)
	report.Network = networkOf(g)
	report.Centralities = centralityScores(cooccur.TopCentralities(g, a.opts.TopCentralities))
	report.Associations = associationsOf(g.Associations(a.opts.TopAssociations))
	if g.Len() == 0 {
		a.log.Debug().Msg("co-occurrence graph is empty")
	}
	if a.opts.SkipImages {
		return nil
	}

	ids := make([]int64, 0, g.Len())
	for _, term := range g.Nodes() {
		id, _ := g.ID(term)
		ids = append(ids, id)
	}
	pos, err := layout.Spring(ctx, g.Weighted(), ids, a.opts.Layout)
	if err != nil {
		return fmt.Errorf("analyze: layout: %w", err)
	}

	nodes := make([]render.Node, len(ids))
	for i, id := range ids {
		p := pos[id]
		nodes[i] = render.Node{Label: g.Term(id), X: p.X, Y: p.Y}
	}
	edges := g.Edges()
	links := make([]render.Link, len(edges))
	for i, e := range edges {
		from, _ := g.ID(e.Source)
		to, _ := g.ID(e.Target)
		links[i] = render.Link{From: int(from), To: int(to), Weight: float64(e.Weight)}
	}
	img, err := render.Network(nodes, links, a.opts.Network)
	if err != nil {
		a.log.Warn().Err(err).Msg("network rendering failed")
		return nil
	}
	report.CooccurrenceImg = render.EncodeBase64(img)
	return nil
}

func (a *Analyzer) timed(stage string, start time.Time) {
	a.log.Debug().Str("stage", stage).Dur("took", time.Since(start)).Msg("stage complete")
}

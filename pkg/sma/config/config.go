package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
)

// Config is the full application configuration.
type Config struct {
	Server    Server            `yaml:"server"`
	Log       Log               `yaml:"log"`
	Analysis  Analysis          `yaml:"analysis"`
	Sentiment Sentiment         `yaml:"sentiment"`
	Stoplist  Stoplist          `yaml:"stoplist"`
	Sources   map[string]Source `yaml:"sources"`
}

// Server configures the HTTP service.
type Server struct {
	Addr           string        `yaml:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
}

// Log configures zerolog output.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Analysis holds the pipeline limits.
type Analysis struct {
	Seed             int64   `yaml:"seed"`
	MaxFeatures      int     `yaml:"max_features"`
	MinDF            int     `yaml:"min_df"`
	MaxDFRatio       float64 `yaml:"max_df_ratio"`
	TopKeywords      int     `yaml:"top_keywords"`
	TopicMethod      string  `yaml:"topic_method"` // online or batch
	NumTopics        int     `yaml:"num_topics"`
	TopicTerms       int     `yaml:"topic_terms"`
	TopicIterations  int     `yaml:"topic_iterations"`
	GraphTerms       int     `yaml:"graph_terms"`
	MaxDocTerms      int     `yaml:"max_doc_terms"`
	TopCentralities  int     `yaml:"top_centralities"`
	TopAssociations  int     `yaml:"top_associations"`
	LayoutSpacing    float64 `yaml:"layout_spacing"`
	LayoutIterations int     `yaml:"layout_iterations"`
	WordCloudWords   int     `yaml:"wordcloud_words"`
	RenderImages     bool    `yaml:"render_images"`
}

// Sentiment configures the lexicon scorer.
type Sentiment struct {
	LexiconPath       string  `yaml:"lexicon_path"`
	NegationWindow    int     `yaml:"negation_window"`
	PositiveThreshold float64 `yaml:"positive_threshold"`
	NegativeThreshold float64 `yaml:"negative_threshold"`
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Path  string   `yaml:"path"`
	Extra []string `yaml:"extra"`
}

// Source describes where a platform's comments are read from.
type Source struct {
	Kind     string `yaml:"kind"` // csv, jsonl, sqlite or postgres
	Path     string `yaml:"path"`
	Column   string `yaml:"column"`
	Table    string `yaml:"table"`
	DSN      string `yaml:"dsn"`
	Platform string `yaml:"platform"` // row filter for a shared sqlite or postgres comments table
	HTML     bool   `yaml:"html"`
}

// Source kinds.
const (
	KindCSV      = "csv"
	KindJSONL    = "jsonl"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
)

// Default returns a configuration with every value set.
func Default() Config {
	return Config{
		Server: Server{
			Addr:           ":5001",
			AllowedOrigins: []string{"*"},
			RequestTimeout: 60 * time.Second,
			MaxBodyBytes:   10 << 20,
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
		Analysis: Analysis{
			Seed:             42,
			MaxFeatures:      1000,
			MinDF:            1,
			MaxDFRatio:       1.0,
			TopKeywords:      20,
			TopicMethod:      "online",
			NumTopics:        5,
			TopicTerms:       10,
			TopicIterations:  10,
			GraphTerms:       100,
			TopCentralities:  10,
			TopAssociations:  10,
			LayoutSpacing:    0.5,
			LayoutIterations: 50,
			WordCloudWords:   200,
			RenderImages:     true,
		},
		Sentiment: Sentiment{
			NegationWindow:    3,
			PositiveThreshold: 0.05,
			NegativeThreshold: -0.05,
		},
		Sources: map[string]Source{
			"youtube": {Kind: KindCSV, Path: "youtube-comments.csv", HTML: true},
			"reddit":  {Kind: KindCSV, Path: "reddit_comments.csv"},
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	a := c.Analysis
	switch {
	case a.MaxFeatures <= 0:
		return fmt.Errorf("%w: analysis.max_features must be positive", internalerr.ErrInvalidConfig)
	case a.MinDF < 0:
		return fmt.Errorf("%w: analysis.min_df must not be negative", internalerr.ErrInvalidConfig)
	case a.MaxDFRatio < 0 || a.MaxDFRatio > 1:
		return fmt.Errorf("%w: analysis.max_df_ratio must be within [0, 1]", internalerr.ErrInvalidConfig)
	case a.TopKeywords <= 0 || a.NumTopics <= 0 || a.TopicTerms <= 0 || a.TopicIterations <= 0:
		return fmt.Errorf("%w: keyword and topic limits must be positive", internalerr.ErrInvalidConfig)
	case a.TopicMethod != "online" && a.TopicMethod != "batch":
		return fmt.Errorf("%w: analysis.topic_method must be online or batch", internalerr.ErrInvalidConfig)
	case a.GraphTerms <= 0 || a.TopCentralities <= 0 || a.TopAssociations <= 0:
		return fmt.Errorf("%w: graph limits must be positive", internalerr.ErrInvalidConfig)
	case a.MaxDocTerms < 0:
		return fmt.Errorf("%w: analysis.max_doc_terms must not be negative", internalerr.ErrInvalidConfig)
	case a.LayoutSpacing < 0 || a.LayoutIterations <= 0:
		return fmt.Errorf("%w: invalid layout settings", internalerr.ErrInvalidConfig)
	case a.WordCloudWords <= 0:
		return fmt.Errorf("%w: analysis.wordcloud_words must be positive", internalerr.ErrInvalidConfig)
	}

	s := c.Sentiment
	if s.NegationWindow < 0 {
		return fmt.Errorf("%w: sentiment.negation_window must not be negative", internalerr.ErrInvalidConfig)
	}
	if s.NegativeThreshold > s.PositiveThreshold {
		return fmt.Errorf("%w: sentiment thresholds are inverted", internalerr.ErrInvalidConfig)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format must be console or json", internalerr.ErrInvalidConfig)
	}

	for name, src := range c.Sources {
		switch src.Kind {
		case KindCSV, KindJSONL:
			if src.Path == "" {
				return fmt.Errorf("%w: source %q needs a path", internalerr.ErrInvalidConfig, name)
			}
		case KindSQLite, KindPostgres:
			if src.DSN == "" || src.Table == "" || src.Column == "" {
				return fmt.Errorf("%w: source %q needs dsn, table and column", internalerr.ErrInvalidConfig, name)
			}
		default:
			return fmt.Errorf("%w: source %q has unknown kind %q", internalerr.ErrInvalidConfig, name, src.Kind)
		}
	}
	return nil
}

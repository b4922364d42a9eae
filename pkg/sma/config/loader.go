package config

import (
	"fmt"
	"os"

	"github.com/copyninja277/Sma-app/pkg/sma/ingest"
	"github.com/copyninja277/Sma-app/pkg/sma/sentiment"
	"github.com/copyninja277/Sma-app/pkg/sma/stoplist"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	StoplistPath string
	ExtraStops   []string
	LexiconPath  string
}

// NewLoader returns a loader for the file paths named in cfg.
func NewLoader(cfg Config) *Loader {
	return &Loader{
		StoplistPath: cfg.Stoplist.Path,
		ExtraStops:   cfg.Stoplist.Extra,
		LexiconPath:  cfg.Sentiment.LexiconPath,
	}
}

// Components holds all loaded configuration components
type Components struct {
	Stoplist  *stoplist.Manager
	Tokenizer *ingest.Tokenizer
	Lexicon   *sentiment.Lexicon
}

// Load reads all configuration files and returns initialized components.
// Missing paths fall back to the embedded English lists.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.StoplistPath != "" {
		data, err := os.ReadFile(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist, err = stoplist.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
	} else {
		comp.Stoplist = stoplist.English()
	}
	for _, w := range l.ExtraStops {
		comp.Stoplist.Add(w)
	}
	comp.Tokenizer = ingest.NewTokenizer(comp.Stoplist)

	if l.LexiconPath != "" {
		lex, err := sentiment.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	} else {
		comp.Lexicon = sentiment.DefaultLexicon()
	}

	return comp, nil
}

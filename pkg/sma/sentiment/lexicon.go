package sentiment

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

// Lexicon maps words to valences and holds the modifier vocabularies.
type Lexicon struct {
	valences     map[string]float64
	intensifiers map[string]float64
	negations    map[string]struct{}
}

// DefaultLexicon returns the built-in English lexicon.
func DefaultLexicon() *Lexicon {
	lex, err := ParseLexicon(defaultLexiconYAML)
	if err != nil {
		panic(fmt.Sprintf("sentiment: embedded lexicon is invalid: %v", err))
	}
	return lex
}

// LoadFromYAML loads a lexicon from a YAML file.
//
// Expected format:
//
//	valences:
//	  good: 0.5
//	  bad: -0.6
//	intensifiers:
//	  very: 1.3
//	negations: [not, never]
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLexicon(data)
}

// ParseLexicon parses lexicon YAML. Valences must lie in [-1, 1].
func ParseLexicon(data []byte) (*Lexicon, error) {
	var doc struct {
		Valences     map[string]float64 `yaml:"valences"`
		Intensifiers map[string]float64 `yaml:"intensifiers"`
		Negations    []string           `yaml:"negations"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	lex := &Lexicon{
		valences:     make(map[string]float64, len(doc.Valences)),
		intensifiers: make(map[string]float64, len(doc.Intensifiers)),
		negations:    make(map[string]struct{}, len(doc.Negations)),
	}
	for w, v := range doc.Valences {
		if v < -1 || v > 1 {
			return nil, fmt.Errorf("parse lexicon: valence of %q out of range: %v", w, v)
		}
		lex.valences[strings.ToLower(w)] = v
	}
	for w, m := range doc.Intensifiers {
		if m <= 0 {
			return nil, fmt.Errorf("parse lexicon: intensifier %q must be positive", w)
		}
		lex.intensifiers[strings.ToLower(w)] = m
	}
	for _, w := range doc.Negations {
		lex.negations[strings.ToLower(w)] = struct{}{}
	}
	return lex, nil
}

// Valence returns the valence of word and whether it is in the lexicon.
func (l *Lexicon) Valence(word string) (float64, bool) {
	v, ok := l.valences[word]
	return v, ok
}

func (l *Lexicon) intensifier(word string) (float64, bool) {
	m, ok := l.intensifiers[word]
	return m, ok
}

func (l *Lexicon) isNegation(word string) bool {
	_, ok := l.negations[word]
	return ok
}

// Size returns the number of scored words.
func (l *Lexicon) Size() int {
	return len(l.valences)
}

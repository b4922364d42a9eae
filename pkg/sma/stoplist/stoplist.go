package stoplist

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed english.yaml
var englishYAML []byte

// Manager holds the stop-word set used when building vocabularies.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a manager seeded with the given words.
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]struct{}, len(initialStops))
	for _, s := range initialStops {
		stops[s] = struct{}{}
	}
	return &Manager{stops: stops}
}

// English returns a manager loaded with the built-in English stop-word list.
func English() *Manager {
	m, err := Parse(englishYAML)
	if err != nil {
		panic(fmt.Sprintf("stoplist: embedded list is invalid: %v", err))
	}
	return m
}

// Parse reads a YAML document of the form `terms: [...]`.
func Parse(data []byte) (*Manager, error) {
	var doc struct {
		Terms []string `yaml:"terms"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse stoplist: %w", err)
	}
	return NewManager(doc.Terms), nil
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	m.stops[token] = struct{}{}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, token)
}

// Len reports the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords in sorted order.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

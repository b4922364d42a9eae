package docstore

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
)

// JSONLSource reads one string field from a file of JSON objects, one per line.
type JSONLSource struct {
	Path   string
	Fields []string // candidate field names; DefaultColumns when empty
	HTML   bool
	Logger *zerolog.Logger
}

const maxLineBytes = 4 << 20

// Load returns the first matching field of every object. Malformed lines are
// skipped with a warning; a file where no object carries a candidate field
// fails with internalerr.ErrSchema.
func (s *JSONLSource) Load(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", s.Path, err)
	}
	defer f.Close()

	log := zerolog.Nop()
	if s.Logger != nil {
		log = *s.Logger
	}
	fields := s.Fields
	if len(fields) == 0 {
		fields = DefaultColumns
	}

	var texts []string
	objects, matched := 0, 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for i := 1; sc.Scan(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			log.Warn().Str("path", s.Path).Int("line", i).Err(err).Msg("skipping malformed JSON")
			continue
		}
		objects++
		for _, name := range fields {
			raw, ok := obj[name]
			if !ok {
				continue
			}
			var text string
			if err := json.Unmarshal(raw, &text); err != nil {
				log.Warn().Str("path", s.Path).Int("line", i).Str("field", name).Msg("field is not a string")
				break
			}
			texts = append(texts, text)
			matched++
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.Path, err)
	}
	if objects > 0 && matched == 0 {
		return nil, fmt.Errorf("%s: %w", s.Path, internalerr.ErrSchema)
	}
	return finish(texts, s.HTML), nil
}

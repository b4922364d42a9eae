package docstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
)

// CSVSource reads one text column of a CSV export.
type CSVSource struct {
	Path    string
	Columns []string // candidate header names; DefaultColumns when empty
	HTML    bool     // strip HTML markup from each cell
}

// Load returns the non-empty cells of the first header that matches a candidate.
func (s *CSVSource) Load(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()
	return s.read(ctx, f)
}

func (s *CSVSource) read(ctx context.Context, r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w: empty file", s.Path, internalerr.ErrSchema)
	}
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", s.Path, err)
	}

	col := findColumn(header, s.candidates())
	if col < 0 {
		return nil, fmt.Errorf("%s: %w (have %s)", s.Path, internalerr.ErrSchema, strings.Join(header, ", "))
	}

	var texts []string
	for line := 2; ; line++ {
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s line %d: %w", s.Path, line, err)
		}
		if col < len(rec) {
			texts = append(texts, rec[col])
		}
	}
	return finish(texts, s.HTML), nil
}

func (s *CSVSource) candidates() []string {
	if len(s.Columns) > 0 {
		return s.Columns
	}
	return DefaultColumns
}

// findColumn returns the index of the first header whose trimmed name is a candidate.
func findColumn(header, candidates []string) int {
	want := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		want[c] = struct{}{}
	}
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		if _, ok := want[name]; ok {
			return i
		}
	}
	return -1
}

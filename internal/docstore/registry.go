package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"

	"github.com/copyninja277/Sma-app/pkg/sma/config"
	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
)

// Registry maps platform names to their document sources.
type Registry struct {
	sources map[string]Source
	dbs     []*sql.DB
	pools   []*pgxpool.Pool
}

// NewRegistry builds a source for every configured platform. Database
// connections are opened here and released by Close.
func NewRegistry(ctx context.Context, specs map[string]config.Source, log zerolog.Logger) (*Registry, error) {
	r := &Registry{sources: make(map[string]Source, len(specs))}
	for name, spec := range specs {
		src, err := r.build(ctx, spec, log)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("source %q: %w", name, err)
		}
		r.sources[PlatformKey(name)] = src
	}
	return r, nil
}

func (r *Registry) build(ctx context.Context, spec config.Source, log zerolog.Logger) (Source, error) {
	var columns []string
	if spec.Column != "" {
		columns = []string{spec.Column}
	}
	switch spec.Kind {
	case config.KindCSV:
		return &CSVSource{Path: spec.Path, Columns: columns, HTML: spec.HTML}, nil
	case config.KindJSONL:
		return &JSONLSource{Path: spec.Path, Fields: columns, HTML: spec.HTML, Logger: &log}, nil
	case config.KindSQLite:
		db, err := OpenSQLite(ctx, spec.DSN)
		if err != nil {
			return nil, err
		}
		r.dbs = append(r.dbs, db)
		return &SQLiteSource{DB: db, Table: spec.Table, Column: spec.Column, Platform: spec.Platform, HTML: spec.HTML}, nil
	case config.KindPostgres:
		pool, err := ConnectPostgres(ctx, spec.DSN)
		if err != nil {
			return nil, err
		}
		r.pools = append(r.pools, pool)
		return &PostgresSource{Pool: pool, Table: spec.Table, Column: spec.Column, Platform: spec.Platform, HTML: spec.HTML}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", internalerr.ErrInvalidConfig, spec.Kind)
	}
}

// PlatformKey normalizes a platform name for lookup.
func PlatformKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds or replaces a platform's source.
func (r *Registry) Register(name string, src Source) {
	r.sources[PlatformKey(name)] = src
}

// Get returns the source registered under name.
func (r *Registry) Get(name string) (Source, error) {
	src, ok := r.sources[PlatformKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownSource, name)
	}
	return src, nil
}

// Load reads the documents of the named platform.
func (r *Registry) Load(ctx context.Context, name string) ([]string, error) {
	src, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return src.Load(ctx)
}

// Names returns the registered platform names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for n := range r.sources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Close releases database connections.
func (r *Registry) Close() error {
	var first error
	for _, db := range r.dbs {
		if err := db.Close(); err != nil && first == nil {
			first = err
		}
	}
	for _, p := range r.pools {
		p.Close()
	}
	return first
}

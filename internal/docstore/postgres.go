package docstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ConnectPostgres creates a pool that dials on first use.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.LazyConnect = true
	return pgxpool.ConnectConfig(ctx, cfg)
}

// PostgresSource reads a text column from a Postgres table.
type PostgresSource struct {
	Pool     *pgxpool.Pool
	Table    string
	Column   string
	Platform string // when set, restrict a shared comment table to one platform
	HTML     bool
}

func (s *PostgresSource) query() (string, []any) {
	col := pgx.Identifier{s.Column}.Sanitize()
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL", col, pgx.Identifier{s.Table}.Sanitize(), col)
	if s.Platform == "" {
		return q, nil
	}
	return q + " AND platform = $1", []any{s.Platform}
}

// Load returns every non-null value of the column.
func (s *PostgresSource) Load(ctx context.Context) ([]string, error) {
	q, args := s.query()
	rows, err := s.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s.%s: %w", s.Table, s.Column, err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return finish(texts, s.HTML), nil
}

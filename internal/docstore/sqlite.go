package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens a comment database with WAL mode enabled and the
// comments table created if missing.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initSchema creates the comments table if it doesn't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	platform TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_platform ON comments(platform);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveComments stores comments for a platform in the comments table.
func SaveComments(ctx context.Context, db *sql.DB, platform string, comments []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO comments(platform, body, created_at) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range comments {
		if _, err := stmt.ExecContext(ctx, platform, c, now); err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
	}
	return tx.Commit()
}

// SQLiteSource reads a text column from a SQLite table.
type SQLiteSource struct {
	DB       *sql.DB
	Table    string
	Column   string
	Platform string // when set, restrict the comments table to one platform
	HTML     bool
}

// Load returns every non-null value of the column in row order.
func (s *SQLiteSource) Load(ctx context.Context) ([]string, error) {
	if !validIdent(s.Table) || !validIdent(s.Column) {
		return nil, fmt.Errorf("sqlite source: invalid table or column %q.%q", s.Table, s.Column)
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL", s.Column, s.Table, s.Column)
	var args []any
	if s.Platform != "" {
		query += " AND platform = ?"
		args = append(args, s.Platform)
	}
	query += " ORDER BY rowid"

	rows, err := s.DB.QueryContext(ctx, query, args...)
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

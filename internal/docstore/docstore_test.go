package docstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/copyninja277/Sma-app/pkg/sma/config"
	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCSVSourceCandidateColumn(t *testing.T) {
	path := writeFile(t, "reddit.csv", "id, Body ,score\n1,great post,5\n2,,3\n3,\"quoted, with comma\",1\n")
	got, err := (&CSVSource{Path: path}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"great post", "quoted, with comma"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load = %v, want %v", got, want)
	}
}

func TestCSVSourceFirstCandidateWins(t *testing.T) {
	path := writeFile(t, "c.csv", "message,text\nfrom message,from text\n")
	got, err := (&CSVSource{Path: path}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0] != "from message" {
		t.Fatalf("Load = %v", got)
	}
}

func TestCSVSourceSchemaError(t *testing.T) {
	path := writeFile(t, "bad.csv", "id,score\n1,2\n")
	_, err := (&CSVSource{Path: path}).Load(context.Background())
	if !errors.Is(err, internalerr.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}

	empty := writeFile(t, "empty.csv", "")
	if _, err := (&CSVSource{Path: empty}).Load(context.Background()); !errors.Is(err, internalerr.ErrSchema) {
		t.Fatalf("expected ErrSchema for empty file, got %v", err)
	}
}

func TestCSVSourceByteOrderMarkHeader(t *testing.T) {
	path := writeFile(t, "excel.csv", "\uFEFFtext,likes\nfirst comment,3\nsecond comment,1\n")
	got, err := (&CSVSource{Path: path}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"first comment", "second comment"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load = %v, want %v", got, want)
	}
}

func TestCSVSourceExplicitColumnAndHTML(t *testing.T) {
	path := writeFile(t, "yt.csv", "author,textDisplay\nbob,Nice <b>video</b>&amp; music<br>thanks\n")
	got, err := (&CSVSource{Path: path, Columns: []string{"textDisplay"}, HTML: true}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0] != "Nice video& music thanks" {
		t.Fatalf("Load = %q", got)
	}
}

func TestCSVSourceMissingFile(t *testing.T) {
	if _, err := (&CSVSource{Path: "/nonexistent.csv"}).Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestJSONLSource(t *testing.T) {
	content := `{"comment": "first"}
not json
{"other": 1}

{"comment": "second", "text": "from text"}
`
	path := writeFile(t, "c.jsonl", content)
	got, err := (&JSONLSource{Path: path}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// text precedes comment in the candidate list
	want := []string{"first", "from text"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load = %v, want %v", got, want)
	}
}

func TestJSONLSourceSchemaError(t *testing.T) {
	path := writeFile(t, "c.jsonl", `{"id": 1}`+"\n")
	if _, err := (&JSONLSource{Path: path}).Load(context.Background()); !errors.Is(err, internalerr.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"<a href=\"x\">link</a> text", "link text"},
		{"a &lt; b", "a < b"},
		{"line<br>break", "line break"},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSQLiteSource(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "comments.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()

	if err := SaveComments(ctx, db, "youtube", []string{"great video", "  "}); err != nil {
		t.Fatalf("SaveComments: %v", err)
	}
	if err := SaveComments(ctx, db, "reddit", []string{"nice thread"}); err != nil {
		t.Fatalf("SaveComments: %v", err)
	}

	src := &SQLiteSource{DB: db, Table: "comments", Column: "body", Platform: "youtube"}
	got, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"great video"}) {
		t.Fatalf("Load = %v", got)
	}

	all, err := (&SQLiteSource{DB: db, Table: "comments", Column: "body"}).Load(ctx)
	if err != nil {
		t.Fatalf("Load all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 comments, got %v", all)
	}
}

func TestSQLiteSourceRejectsBadIdent(t *testing.T) {
	src := &SQLiteSource{Table: "comments; DROP TABLE x", Column: "body"}
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error for invalid identifier")
	}
}

func TestPostgresQuerySanitized(t *testing.T) {
	src := &PostgresSource{Table: "comments", Column: `bo"dy`}
	want := `SELECT "bo""dy" FROM "comments" WHERE "bo""dy" IS NOT NULL`
	got, args := src.query()
	if got != want || len(args) != 0 {
		t.Fatalf("query = %s %v, want %s", got, args, want)
	}
}

func TestPostgresQueryPlatformFilter(t *testing.T) {
	src := &PostgresSource{Table: "comments", Column: "body", Platform: "reddit"}
	want := `SELECT "body" FROM "comments" WHERE "body" IS NOT NULL AND platform = $1`
	got, args := src.query()
	if got != want {
		t.Fatalf("query = %s, want %s", got, want)
	}
	if !reflect.DeepEqual(args, []any{"reddit"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestPostgresSource(t *testing.T) {
	dsn := os.Getenv("SMA_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SMA_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := ConnectPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("ConnectPostgres: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, "CREATE TABLE IF NOT EXISTS sma_test_comments (platform TEXT, body TEXT)"); err != nil {
		t.Skipf("cannot create table: %v", err)
	}
	defer pool.Exec(ctx, "DROP TABLE sma_test_comments")
	if _, err := pool.Exec(ctx, "INSERT INTO sma_test_comments VALUES ('youtube', 'hello'), ('youtube', NULL), ('reddit', 'other')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := (&PostgresSource{Pool: pool, Table: "sma_test_comments", Column: "body", Platform: "youtube"}).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("Load = %v", got)
	}
}

func TestRegistry(t *testing.T) {
	csvPath := writeFile(t, "yt.csv", "text\nhello world\n")
	dbPath := filepath.Join(t.TempDir(), "store.db")
	specs := map[string]config.Source{
		"youtube": {Kind: config.KindCSV, Path: csvPath},
		"forum":   {Kind: config.KindSQLite, DSN: dbPath, Table: "comments", Column: "body"},
	}
	reg, err := NewRegistry(context.Background(), specs, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer reg.Close()

	if got := reg.Names(); !reflect.DeepEqual(got, []string{"forum", "youtube"}) {
		t.Errorf("Names = %v", got)
	}
	docs, err := reg.Load(context.Background(), "youtube")
	if err != nil || len(docs) != 1 {
		t.Fatalf("Load youtube = %v, %v", docs, err)
	}
	if _, err := reg.Load(context.Background(), "myspace"); !errors.Is(err, internalerr.ErrUnknownSource) {
		t.Fatalf("expected ErrUnknownSource, got %v", err)
	}
}

func TestRegistryPlatformNamesIgnoreCase(t *testing.T) {
	csvPath := writeFile(t, "yt.csv", "text\nhello world\n")
	specs := map[string]config.Source{
		"YouTube": {Kind: config.KindCSV, Path: csvPath},
	}
	reg, err := NewRegistry(context.Background(), specs, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer reg.Close()

	if got := reg.Names(); !reflect.DeepEqual(got, []string{"youtube"}) {
		t.Errorf("Names = %v", got)
	}
	for _, name := range []string{"youtube", "YouTube", " YOUTUBE "} {
		docs, err := reg.Load(context.Background(), name)
		if err != nil || len(docs) != 1 {
			t.Errorf("Load(%q) = %v, %v", name, docs, err)
		}
	}

	reg.Register("Reddit", &CSVSource{Path: csvPath})
	if _, err := reg.Get("reddit"); err != nil {
		t.Errorf("Get after Register: %v", err)
	}
}

func TestRegistryUnknownKind(t *testing.T) {
	_, err := NewRegistry(context.Background(), map[string]config.Source{"x": {Kind: "ftp"}}, zerolog.Nop())
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

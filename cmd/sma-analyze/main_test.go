package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/copyninja277/Sma-app/internal/docstore"
	"github.com/copyninja277/Sma-app/pkg/sma/config"
	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDocsInput(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	log := zerolog.Nop()

	csvPath := writeFixture(t, "comments.csv", "author,textDisplay\nann,Great <b>video</b>\nbob,\n")
	jsonlPath := writeFixture(t, "comments.jsonl", `{"body": "first"}`+"\n"+`{"body": "second"}`+"\n")

	tests := []struct {
		name   string
		input  string
		format string
		column string
		html   bool
		want   []string
	}{
		{"csv with column and html", csvPath, "csv", "textDisplay", true, []string{"Great video"}},
		{"jsonl default fields", jsonlPath, "jsonl", "", false, []string{"first", "second"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loadDocs(ctx, cfg, log, tt.input, tt.format, tt.column, "", tt.html)
			if err != nil {
				t.Fatalf("loadDocs: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("loadDocs = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadDocsErrors(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	log := zerolog.Nop()

	noText := writeFixture(t, "scores.csv", "id,score\n1,2\n")
	if _, err := loadDocs(ctx, cfg, log, noText, "csv", "", "", false); !errors.Is(err, internalerr.ErrSchema) {
		t.Errorf("expected ErrSchema, got %v", err)
	}
	if _, err := loadDocs(ctx, cfg, log, noText, "xml", "", "", false); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := loadDocs(ctx, cfg, log, "", "csv", "", "myspace", false); !errors.Is(err, internalerr.ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}
}

func TestLoadDocsPlatform(t *testing.T) {
	cfg := config.Default()
	cfg.Sources = map[string]config.Source{
		"reddit": {Kind: config.KindCSV, Path: writeFixture(t, "reddit.csv", "Body\nnice thread\n")},
	}
	got, err := loadDocs(context.Background(), cfg, zerolog.Nop(), "", "csv", "", "Reddit", false)
	if err != nil {
		t.Fatalf("loadDocs: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"nice thread"}) {
		t.Fatalf("loadDocs = %q", got)
	}
}

func TestSaveDocs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")
	if err := saveDocs(ctx, path, "youtube", []string{"one", "two"}); err != nil {
		t.Fatalf("saveDocs: %v", err)
	}

	db, err := docstore.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()
	got, err := (&docstore.SQLiteSource{DB: db, Table: "comments", Column: "body", Platform: "youtube"}).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("stored = %q", got)
	}
}

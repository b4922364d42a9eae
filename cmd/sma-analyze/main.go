package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/copyninja277/Sma-app/internal/docstore"
	"github.com/copyninja277/Sma-app/internal/logging"
	"github.com/copyninja277/Sma-app/pkg/sma"
	"github.com/copyninja277/Sma-app/pkg/sma/config"
	"github.com/copyninja277/Sma-app/pkg/sma/stoplist"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (optional)")
		input      = flag.String("input", "", "Path to a CSV or JSONL comment export")
		format     = flag.String("format", "csv", "Input format: csv or jsonl")
		column     = flag.String("column", "", "Text column or field (default: first known candidate)")
		platform   = flag.String("platform", "", "Configured platform to analyze instead of -input")
		html       = flag.Bool("html", false, "Strip HTML markup from comments")
		images     = flag.Bool("images", false, "Include base64 PNG images in the report")
		store      = flag.String("store", "", "Optional: SQLite file to save the loaded comments into")
		suggest    = flag.Int("suggest-stops", 0, "Log up to N corpus-specific stopword candidates")
		out        = flag.String("out", "", "Write the report here instead of stdout")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail("load config: %v", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		fail("apply environment: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		fail("validate config: %v", err)
	}
	if *input == "" && *platform == "" {
		fail("-input or -platform required")
	}

	log := logging.New(cfg.Log, "sma-analyze")

	components, err := config.NewLoader(cfg).Load()
	if err != nil {
		fail("load components: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	docs, err := loadDocs(ctx, cfg, log, *input, *format, *column, *platform, *html)
	if err != nil {
		fail("load docs: %v", err)
	}
	log.Info().Int("documents", len(docs)).Msg("loaded comments")

	if *store != "" {
		name := *platform
		if name == "" {
			name = "import"
		}
		if err := saveDocs(ctx, *store, name, docs); err != nil {
			fail("save comments: %v", err)
		}
		log.Info().Str("store", *store).Str("platform", name).Msg("saved comments")
	}

	if *suggest > 0 {
		candidates := sma.SuggestStopwords(docs, components.Stoplist, cfg.Analysis.GraphTerms, stoplist.DefaultThresholds())
		if len(candidates) > *suggest {
			candidates = candidates[:*suggest]
		}
		for _, c := range candidates {
			log.Info().Str("token", c.Token).Float64("df_percent", c.DFPercent).Float64("score", c.Score).Msg("stopword candidate")
		}
	}

	opts := sma.OptionsFromConfig(cfg, components)
	opts.SkipImages = !*images
	opts.Logger = &log

	report, err := sma.New(opts).Analyze(ctx, docs)
	if err != nil {
		fail("analyze: %v", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fail("marshal report: %v", err)
	}
	if *out == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		fail("write report: %v", err)
	}
}

func loadDocs(ctx context.Context, cfg config.Config, log zerolog.Logger, input, format, column, platform string, html bool) ([]string, error) {
	if input == "" {
		registry, err := docstore.NewRegistry(ctx, cfg.Sources, log)
		if err != nil {
			return nil, err
		}
		defer registry.Close()
		return registry.Load(ctx, platform)
	}

	var columns []string
	if column != "" {
		columns = []string{column}
	}
	var src docstore.Source
	switch format {
	case config.KindCSV:
		src = &docstore.CSVSource{Path: input, Columns: columns, HTML: html}
	case config.KindJSONL:
		src = &docstore.JSONLSource{Path: input, Fields: columns, HTML: html, Logger: &log}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return src.Load(ctx)
}

func saveDocs(ctx context.Context, path, platform string, docs []string) error {
	db, err := docstore.OpenSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()
	return docstore.SaveComments(ctx, db, platform, docs)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/copyninja277/Sma-app/internal/docstore"
	"github.com/copyninja277/Sma-app/internal/logging"
	"github.com/copyninja277/Sma-app/internal/server"
	"github.com/copyninja277/Sma-app/pkg/sma"
	"github.com/copyninja277/Sma-app/pkg/sma/config"
)

func main() {
	configPath := flag.String("config", os.Getenv("SMA_CONFIG"), "Path to YAML config (optional)")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(zerolog.New(os.Stderr), "load config", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		fatal(zerolog.New(os.Stderr), "apply environment", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal(zerolog.New(os.Stderr), "validate config", err)
	}

	log := logging.New(cfg.Log, "sma-api")

	components, err := config.NewLoader(cfg).Load()
	if err != nil {
		fatal(log, "load components", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := docstore.NewRegistry(ctx, cfg.Sources, log)
	if err != nil {
		fatal(log, "open document sources", err)
	}
	defer registry.Close()

	opts := sma.OptionsFromConfig(cfg, components)
	opts.Logger = &log
	analyzer := sma.New(opts)

	httpServer := server.NewServer(cfg.Server, analyzer, registry, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Strs("platforms", registry.Names()).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func fatal(log zerolog.Logger, msg string, err error) {
	log.Error().Err(err).Msg(msg)
	os.Exit(1)
}

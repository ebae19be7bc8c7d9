package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glekoz/uvsearch/config"
	"github.com/glekoz/uvsearch/internal/importer"
	"github.com/glekoz/uvsearch/internal/repository"
	"github.com/glekoz/uvsearch/pkg/logger"
	"github.com/joho/godotenv"
)

// Usage: importer [file]. Without an argument IMPORT_FILE is used.
func main() {
	_ = godotenv.Load()
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger := logger.New(os.Stdout, cfg.App.Env, cfg.App.LogLevel)

	path := cfg.Import.File
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		logger.Error("no input file, pass a path or set IMPORT_FILE")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Import.TimeoutSeconds)*time.Second)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, aborting import", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := run(ctx, cfg, logger, path); err != nil {
		logger.Error("import failed", "file", path, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, lg *slog.Logger, path string) error {
	pool, err := repository.NewPool(ctx, cfg.PG)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	repo := repository.New(pool, cfg.PG.Tables)
	defer repo.Close()

	im := importer.New(cfg.Import, lg, repo)
	stats, err := im.RunFile(ctx, path)
	if err != nil {
		return err
	}
	lg.InfoContext(ctx, "observations loaded",
		"file", path, "table", cfg.PG.Tables.Observations,
		"inserted", stats.Inserted, "skipped", stats.Skipped)
	return nil
}

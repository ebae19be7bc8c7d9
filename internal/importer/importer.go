package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/glekoz/uvsearch/config"
	"github.com/glekoz/uvsearch/internal/repository"
	"github.com/glekoz/uvsearch/pkg/logger"
)

type RepoAPI interface {
	BeginTx(ctx context.Context) (repository.Tx, error)
}

type Importer struct {
	logger    *slog.Logger
	repo      RepoAPI
	batchSize int
	comma     rune
}

type Stats struct {
	Inserted int64
	Skipped  int
	Batches  int
}

func New(cfg config.Import, log *slog.Logger, r RepoAPI) *Importer {
	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = 1000
	}
	comma := ','
	if cfg.Delimiter != "" {
		comma = cfg.Comma()
	}
	return &Importer{
		logger:    log,
		repo:      r,
		batchSize: batchSize,
		comma:     comma,
	}
}

// RunFile imports the file at path. Every record logged during the run
// carries the file name.
func (im *Importer) RunFile(ctx context.Context, path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()

	return im.Run(logger.WithDetails(ctx, "file", path), f)
}

// Run loads every valid line of r into the observation table inside a single
// transaction. Nothing is kept if any batch fails.
func (im *Importer) Run(ctx context.Context, r io.Reader) (Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, batches, err := im.stream(ctx, r)
	if err != nil {
		return Stats{}, fmt.Errorf("read header: %w", err)
	}
	im.logger.InfoContext(ctx, "importing observations", "columns", parser.Columns(), "batchSize", im.batchSize)

	tx, err := im.repo.BeginTx(ctx)
	if err != nil {
		return Stats{}, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		// ctx may already be cancelled here
		if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil {
			im.logger.ErrorContext(ctx, "rollback failed", "error", err)
		}
	}()

	var stats Stats
	for batch := range batches {
		if batch.Err != nil {
			return stats, fmt.Errorf("read file: %w", batch.Err)
		}
		stats.Skipped += batch.Skipped
		if len(batch.Records) == 0 {
			continue
		}

		n, err := tx.InsertRows(ctx, parser.Columns(), batch.Records)
		if err != nil {
			return stats, fmt.Errorf("batch %d: %w", stats.Batches+1, err)
		}
		stats.Inserted += n
		stats.Batches++
		im.logger.DebugContext(ctx, "batch saved", "batch", stats.Batches, "rows", n)
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	if err := tx.Commit(ctx); err != nil {
		return stats, fmt.Errorf("commit: %w", err)
	}
	committed = true

	im.logger.InfoContext(ctx, "import finished", "inserted", stats.Inserted, "skipped", stats.Skipped, "batches", stats.Batches)
	return stats, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glekoz/uvsearch/config"
	"github.com/glekoz/uvsearch/internal/repository/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	InsertRows(ctx context.Context, columns []string, rows [][]string) (int64, error)
}

type Repository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

type Transaction struct {
	tx pgx.Tx
	q  *db.Queries
}

// NewPool opens the process-wide connection pool and checks that the
// database answers before returning it.
func NewPool(ctx context.Context, cfg config.PG) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.PingTimeout = 30 * time.Second
	poolCfg.HealthCheckPeriod = 1 * time.Minute
	if cfg.PoolMax > 0 {
		poolCfg.MaxConns = int32(cfg.PoolMax)
	}

	p, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	err = p.Ping(ctx)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return p, nil
}

func New(pool *pgxpool.Pool, tables config.Tables) *Repository {
	return &Repository{
		q:    db.New(pool, tables.Observations, tables.UV),
		pool: pool,
	}
}

// FindByMinute checks a connection out of the pool for the duration of the
// lookup and returns it on every path.
func (r *Repository) FindByMinute(ctx context.Context, minute string) ([]map[string]any, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := r.q.WithConn(conn).FindByMinute(ctx, minute)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	return rows, nil
}

func (r *Repository) LatestUV(ctx context.Context, location string) (*float64, error) {
	uv, err := r.q.LatestUVByLocation(ctx, location)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query latest uv: %w", err)
	}
	if !uv.Valid {
		return nil, nil
	}
	return &uv.Float64, nil
}

func (r *Repository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &Transaction{tx: tx, q: r.q.WithTx(tx)}, nil
}

func (t *Transaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *Transaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *Transaction) InsertRows(ctx context.Context, columns []string, rows [][]string) (int64, error) {
	n, err := t.q.InsertObservations(ctx, columns, rows)
	if err != nil {
		return 0, fmt.Errorf("insert observations: %w", err)
	}
	return n, nil
}

// Close закрывает пул соединений
func (r *Repository) Close() {
	r.pool.Close()
}

// Ping проверяет доступность БД
func (r *Repository) Ping(ctx context.Context) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	return r.q.WithConn(conn).Ping(ctx)
}

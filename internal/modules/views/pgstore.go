package views

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPool is the subset of *pgxpool.Pool used by PostgresStore.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgCreateTable = `CREATE TABLE IF NOT EXISTS post_views (
	id BIGSERIAL PRIMARY KEY,
	post_id VARCHAR(255) NOT NULL UNIQUE,
	views BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	pgSelectViews = `SELECT views FROM post_views WHERE post_id = $1`
	pgIncrement   = `INSERT INTO post_views (post_id, views) VALUES ($1, 1)
ON CONFLICT (post_id) DO UPDATE SET views = post_views.views + 1, updated_at = NOW()
RETURNING views`
	pgSelectAll = `SELECT post_id, views FROM post_views`
)

// PostgresStore keeps counters in a hosted Postgres table.
type PostgresStore struct {
	pool PgxPool
}

func NewPostgresStore(pool PgxPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ConnectPostgres opens a pgx pool and pings it.
func ConnectPostgres(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return pool, nil
}

func (s *PostgresStore) Backend() string { return "postgres" }

// EnsureSchema creates the post_views table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, pgCreateTable)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, key string) (int64, error) {
	var views int64
	if err := s.pool.QueryRow(ctx, pgSelectViews, key).Scan(&views); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return views, nil
}

func (s *PostgresStore) Increment(ctx context.Context, key string) (int64, error) {
	var views int64
	if err := s.pool.QueryRow(ctx, pgIncrement, key).Scan(&views); err != nil {
		return 0, err
	}
	return views, nil
}

func (s *PostgresStore) All(ctx context.Context) (map[string]int64, error) {
	rows, err := s.pool.Query(ctx, pgSelectAll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var (
			key   string
			views int64
		)
		if err := rows.Scan(&key, &views); err != nil {
			return nil, err
		}
		counts[key] = views
	}
	return counts, rows.Err()
}

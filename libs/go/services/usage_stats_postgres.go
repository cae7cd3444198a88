package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/churnlens/churn-api/libs/go/types/business"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const usageStatsSchema = `CREATE TABLE IF NOT EXISTS api_usage_stats (
	username             TEXT PRIMARY KEY,
	total                BIGINT NOT NULL DEFAULT 0,
	success              BIGINT NOT NULL DEFAULT 0,
	client_errors        BIGINT NOT NULL DEFAULT 0,
	server_errors        BIGINT NOT NULL DEFAULT 0,
	positive_predictions BIGINT NOT NULL DEFAULT 0,
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const recordUsageSQL = `INSERT INTO api_usage_stats
	(username, total, success, client_errors, server_errors, positive_predictions, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (username) DO UPDATE SET
	total                = api_usage_stats.total + EXCLUDED.total,
	success              = api_usage_stats.success + EXCLUDED.success,
	client_errors        = api_usage_stats.client_errors + EXCLUDED.client_errors,
	server_errors        = api_usage_stats.server_errors + EXCLUDED.server_errors,
	positive_predictions = api_usage_stats.positive_predictions + EXCLUDED.positive_predictions,
	updated_at           = now()`

const snapshotUsageSQL = `SELECT total, success, client_errors, server_errors, positive_predictions
FROM api_usage_stats WHERE username = $1`

// DBTX is the part of pgxpool.Pool the Postgres store needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresUsageStatsStore keeps one counter row per user. Increments are a
// single upsert, so concurrent instances never lose updates.
type PostgresUsageStatsStore struct {
	db DBTX
}

func NewPostgresUsageStatsStore(db DBTX) *PostgresUsageStatsStore {
	return &PostgresUsageStatsStore{db: db}
}

// NewPostgresPool opens a small pool; usage writes are one statement per request.
func NewPostgresPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the counters table when it does not exist yet.
func (s *PostgresUsageStatsStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, usageStatsSchema); err != nil {
		return fmt.Errorf("failed to create usage stats table: %w", err)
	}
	return nil
}

// Record implements interfaces.UsageStatsStore.
func (s *PostgresUsageStatsStore) Record(ctx context.Context, event business.UsageEvent) error {
	var delta business.UsageSnapshot
	applyUsageEvent(&delta, event)

	_, err := s.db.Exec(ctx, recordUsageSQL,
		event.Username,
		delta.Total,
		delta.Success,
		delta.ClientErrors,
		delta.ServerErrors,
		delta.Positive,
	)
	if err != nil {
		return fmt.Errorf("failed to record usage for %s: %w", event.Username, err)
	}
	return nil
}

// Snapshot implements interfaces.UsageStatsStore.
func (s *PostgresUsageStatsStore) Snapshot(ctx context.Context, username string) (business.UsageSnapshot, error) {
	snap := business.UsageSnapshot{Username: username}
	err := s.db.QueryRow(ctx, snapshotUsageSQL, username).Scan(
		&snap.Total,
		&snap.Success,
		&snap.ClientErrors,
		&snap.ServerErrors,
		&snap.Positive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return business.UsageSnapshot{Username: username}, nil
	}
	if err != nil {
		return business.UsageSnapshot{}, fmt.Errorf("failed to read usage for %s: %w", username, err)
	}
	return snap, nil
}

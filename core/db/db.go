package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"adflow.app/tracker/core/db/sqlc"
)

// DB owns the connection pool and runs read-committed transactions over it.
type DB struct {
	pool     *pgxpool.Pool
	attempts int
}

type Config struct {
	DSN string

	// Defaults to 10. With PgBouncer in front this can stay low per replica.
	MaxConns int32
	// Defaults to 2.
	MinConns int32

	// TxMaxRetries bounds how many times WithTx runs a transaction that keeps
	// losing lock races. Defaults to 3.
	TxMaxRetries int
}

// SQLSTATE codes the stores and WithTx branch on.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeUniqueViolation      = "23505"
)

func orDefault[T int | int32](v, fallback T) T {
	if v > 0 {
		return v
	}
	return fallback
}

// New opens the pool and pings it once.
func New(ctx context.Context, cfg Config) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	poolCfg.MaxConns = orDefault(cfg.MaxConns, 10)
	poolCfg.MinConns = orDefault(cfg.MinConns, 2)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &DB{pool: pool, attempts: orDefault(cfg.TxMaxRetries, 3)}, nil
}

func (db *DB) Close() { db.pool.Close() }

// Pool exposes the pool for migrations and test setup.
func (db *DB) Pool() *pgxpool.Pool { return db.pool }

// Queries binds the generated queries to the pool, outside any transaction.
func (db *DB) Queries() *sqlc.Queries { return sqlc.New(db.pool) }

// WithTx runs fn inside a transaction, committing when fn returns nil.
// Serialization failures and deadlocks re-run fn from scratch with a
// quadratic backoff, so fn must not carry state between calls.
//
//	err := db.WithTx(ctx, func(q *sqlc.Queries) error {
//		if _, err := q.LockOrganization(ctx, orgID); err != nil {
//			return err
//		}
//		_, err := q.CreateBrand(ctx, params)
//		return err
//	})
func (db *DB) WithTx(ctx context.Context, fn func(q *sqlc.Queries) error) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = db.once(ctx, fn); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == db.attempts {
			return fmt.Errorf("transaction gave up after %d attempts: %w", attempt, err)
		}

		wait := time.Duration(attempt*attempt) * 10 * time.Millisecond
		slog.WarnContext(ctx, "transaction lost a lock race, retrying",
			"attempt", attempt,
			"wait", wait,
			"error", err)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

func (db *DB) once(ctx context.Context, fn func(q *sqlc.Queries) error) error {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	// No-op once committed.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(sqlc.New(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsRetryable reports whether err is a lock conflict a fresh transaction may
// not hit again.
func IsRetryable(err error) bool {
	switch sqlState(err) {
	case codeSerializationFailure, codeDeadlockDetected:
		return true
	}
	return false
}

// IsUniqueViolation reports whether err broke a unique constraint.
func IsUniqueViolation(err error) bool {
	return sqlState(err) == codeUniqueViolation
}

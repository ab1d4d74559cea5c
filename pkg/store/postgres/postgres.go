// Package postgres provides a PostgreSQL-backed Store built on pgxpool.
// Uniqueness invariants (email, relationship triple) are enforced by
// unique indexes, so concurrent writers cannot race past them.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shulgaalexey/robo-peoples-person/pkg/store"
)

const (
	uniqueViolation = "23505"
	fkViolation     = "23503"
)

// Store is a PostgreSQL-backed store.Store.
type Store struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// Options configures the connection pool.
type Options struct {
	MaxConns     int32
	MinConns     int32
	QueryTimeout time.Duration
}

// DefaultOptions returns the pool settings used when Options is zero.
func DefaultOptions() Options {
	return Options{
		MaxConns:     10,
		MinConns:     2,
		QueryTimeout: 5 * time.Second,
	}
}

// New connects to databaseURL, verifies the connection and creates the
// schema if missing.
func New(ctx context.Context, databaseURL string, opts Options) (*Store, error) {
	def := DefaultOptions()
	if opts.MaxConns == 0 {
		opts.MaxConns = def.MaxConns
	}
	if opts.MinConns == 0 {
		opts.MinConns = def.MinConns
	}
	if opts.QueryTimeout == 0 {
		opts.QueryTimeout = def.QueryTimeout
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	config.MaxConns = opts.MaxConns
	config.MinConns = opts.MinConns
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &Store{pool: pool, queryTimeout: opts.QueryTimeout}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// queryCtx bounds a read query by the configured timeout.
func (s *Store) queryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

// mapError translates driver errors onto the store taxonomy.
func mapError(op, entity, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return &store.StoreError{Op: op, Entity: entity, ID: id, Cause: store.ErrNotFound}
	case errors.Is(err, context.DeadlineExceeded):
		return store.TimeoutError(op, entity, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return store.ConflictError(op, entity, pgErr.ConstraintName)
		case fkViolation:
			return &store.StoreError{Op: op, Entity: entity, ID: id, Cause: store.ErrNotFound}
		}
	}
	return &store.StoreError{Op: op, Entity: entity, ID: id, Cause: err}
}

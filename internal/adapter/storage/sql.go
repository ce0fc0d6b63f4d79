package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/niksmo/storefront/pkg/retry"
)

var _ Store = (*SQLStore)(nil)

// SQLStore is the PostgreSQL catalog store backend: one row per record
// path in the catalog table, for deployments that proxy the catalog
// through a server-tier database instead of an embedded one.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(ctx context.Context, dsn string) (SQLStore, error) {
	const op = "SQLStore"
	log := slog.With("op", op)

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return SQLStore{}, fmt.Errorf("%s: invalid dsn: %w", op, err)
	}
	connStr := stdlib.RegisterConnConfig(connConfig)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return SQLStore{}, fmt.Errorf("%s: %w", op, err)
	}

	s := SQLStore{db}

	// availability is only retried at startup, never per operation
	err = retry.Do(ctx, retry.RetryConfig{MaxAttempts: 3}, func() error {
		return s.db.PingContext(ctx)
	})
	if err != nil {
		return SQLStore{}, fmt.Errorf(
			"%s: database is unavailable: %w", op, err,
		)
	}
	log.Info("database is available")
	return s, nil
}

func (s SQLStore) List(ctx context.Context, prefix string) ([]Entry, error) {
	const op = "SQLStore.List"

	query := `
		SELECT path, record FROM catalog
		WHERE path LIKE $1 || '%' ORDER BY path ASC;`

	rows, err := s.db.QueryContext(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

func (s SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "SQLStore.Get"

	query := `SELECT record FROM catalog WHERE path = $1;`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrKeyNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

func (s SQLStore) Put(ctx context.Context, key string, value []byte) error {
	const op = "SQLStore.Put"

	query := `
		INSERT INTO catalog (path, record)
		VALUES ($1, $2)
		ON CONFLICT (path) DO UPDATE SET record = EXCLUDED.record;`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s SQLStore) Delete(ctx context.Context, key string) error {
	const op = "SQLStore.Delete"

	query := `DELETE FROM catalog WHERE path = $1;`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s SQLStore) Close() {
	const op = "SQLStore.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")
	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}

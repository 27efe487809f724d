// Package store is the schedule persistence layer: a lib/pq-backed
// DB wrapper plus a repository for draft/published/archived schedule
// versions. The roster core itself never touches this package — it
// consumes and produces plain values. The repository loads prior-month
// shifts and saves new versions; internal/httpapi and cmd/rosterd do
// not use it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/turnos/turnos/internal/config"
	"github.com/turnos/turnos/pkg/rlog"
)

// DB wraps a *sql.DB configured from config.DatabaseConfig.
type DB struct {
	*sql.DB
	cfg *config.DatabaseConfig
}

// New opens and pings a Postgres connection per cfg.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	rlog.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Msg("database connection established")

	return &DB{DB: db, cfg: cfg}, nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	if db.DB != nil {
		rlog.Info().Msg("closing database connection")
		return db.DB.Close()
	}
	return nil
}

// Health pings the database.
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Transaction runs fn inside a transaction, committing on success and
// rolling back (and re-panicking) otherwise.
func (db *DB) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := db.DB.ExecContext(ctx, query, args...)
	if d := time.Since(start); d > 100*time.Millisecond {
		rlog.Warn().Str("query", truncateQuery(query)).Dur("duration", d).Msg("slow query")
	}
	return result, err
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := db.DB.QueryContext(ctx, query, args...)
	if d := time.Since(start); d > 100*time.Millisecond {
		rlog.Warn().Str("query", truncateQuery(query)).Dur("duration", d).Msg("slow query")
	}
	return rows, err
}

func truncateQuery(query string) string {
	if len(query) > 200 {
		return query[:200] + "..."
	}
	return query
}

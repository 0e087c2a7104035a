// Package database wraps database/sql with the pgx stdlib driver and provides
// the transaction helper the repositories are built on.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ghuser/circulation/pkg/logger"
)

// Database is a shared connection pool. All repository reads go through DB();
// multi-statement mutations go through WithTx so they commit or roll back as
// a unit.
type Database struct {
	db  *sql.DB
	log logger.Logger
}

// NewPool opens a pooled connection to dbURL and verifies it with a ping.
func NewPool(ctx context.Context, dbURL string, log logger.Logger) (*Database, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Database{db: db, log: log}, nil
}

// DB returns the underlying *sql.DB for reads and for libraries that manage
// their own transactions (watermill, goose).
func (d *Database) DB() *sql.DB {
	return d.db
}

// WithTx runs fn inside a transaction. fn returning an error rolls everything
// back; otherwise the transaction is committed. A rollback failure after an
// fn error is logged, not returned — the fn error is the one callers act on.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && d.log != nil {
			d.log.ErrorContext(ctx, "tx rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Ping checks database connectivity. Satisfies httpx.HealthChecker.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close shuts down the pool.
func (d *Database) Close() error {
	return d.db.Close()
}

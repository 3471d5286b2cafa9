// Package sqlite implements the account repository on SQLite.
//
// The driver is modernc.org/sqlite — a pure Go translation of SQLite, so
// no CGo and no external database server to operate. sql.DB is already a
// connection pool safe for concurrent use, which is all the concurrency
// coordination this service needs: uniqueness and row existence are
// enforced by the store, not by in-process locking.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// defaultTimeout bounds every store call when the caller doesn't
// configure one. A hung query surfaces as a generic 500, never a stuck
// request.
const defaultTimeout = 5 * time.Second

// DB wraps a sql.DB connection pool and implements
// repository.AccountRepository.
type DB struct {
	conn    *sql.DB
	timeout time.Duration
}

// New opens a SQLite database at the given DSN and creates the schema.
//
// DSN examples:
//   - "data/accounts.db" → file-based database (persistent)
//   - ":memory:"         → in-memory database (tests)
func New(dsn string, timeout time.Duration) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each pool connection to a plain ":memory:" DSN would get its own
	// private database, so pin the pool to a single connection there.
	if dsn == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db := &DB{conn: conn, timeout: timeout}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the accounts table. The primary key on user_id is the
// source of truth for uniqueness; the service's existence pre-check is
// only a best-effort early error. Column widths from the original schema
// (20/255/30/100) are enforced by the validators — SQLite does not
// enforce VARCHAR lengths.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			user_id  TEXT PRIMARY KEY,
			password TEXT NOT NULL,
			nickname TEXT NOT NULL,
			comment  TEXT
		);
	`)
	if err != nil {
		return fmt.Errorf("creating accounts table: %w", err)
	}
	return nil
}

// withTimeout derives a bounded context for a single store call.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.timeout)
}

// Package db opens the SQLite database and holds small database/sql
// helpers shared by the stores.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// dsnParams apply to every connection. Two instances may share the state
// file, so writers wait for the lock instead of failing.
const dsnParams = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Open opens the SQLite file at path, creating its directory.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	conn, err := sql.Open("sqlite", path+dsnParams)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return conn, nil
}

// WithTx runs fn in a transaction. It commits when fn returns nil and
// rolls back otherwise.
func WithTx(conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// Time reads a nullable column of Unix seconds. NULL reads as the zero time.
func Time(n sql.NullInt64) time.Time {
	if !n.Valid {
		return time.Time{}
	}
	return time.Unix(n.Int64, 0)
}

// String reads a nullable text column. NULL reads as "".
func String(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

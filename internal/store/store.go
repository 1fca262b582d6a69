// Package store keeps the ledger of the current run in SQLite: play
// sessions and the gesture, voice and game events recorded during them.
// The default database lives in memory and is gone when the process exits.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Store represents a SQLite database connection for the session ledger.
type Store struct {
	db  *sql.DB
	dsn string
}

// New creates a new Store for the given data source.
// It opens the database connection, enables foreign keys, and runs migrations.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database, so keep one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{
		db:  db,
		dsn: dsn,
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// NewMemory creates a Store backed by a private in-memory database.
func NewMemory() (*Store, error) {
	return New(MemoryDSN)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

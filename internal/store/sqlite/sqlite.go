// Package sqlite persists history and settings in a SQLite database using
// the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/hay-kot/chefhat/internal/core/history"
	"github.com/hay-kot/chefhat/internal/core/language"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	timestamp   INTEGER PRIMARY KEY,
	ingredients TEXT NOT NULL,
	response    TEXT NOT NULL,
	language    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

const languageKey = "language"

// Store implements history.Persister and language.Store on one database.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open creates or opens the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Read returns all stored entries, newest first.
func (s *Store) Read(ctx context.Context) ([]history.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, ingredients, response, language FROM entries ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []history.Entry
	for rows.Next() {
		var (
			e    history.Entry
			lang string
		)
		if err := rows.Scan(&e.Timestamp, &e.Ingredients, &e.Response, &lang); err != nil {
			return nil, fmt.Errorf("%w: scan entry: %v", history.ErrCorrupted, err)
		}
		e.Language = language.Code(lang)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Write replaces the stored entries in a single transaction.
func (s *Store) Write(ctx context.Context, entries []history.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	for _, e := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO entries (timestamp, ingredients, response, language) VALUES (?, ?, ?, ?)`,
			e.Timestamp, e.Ingredients, e.Response, string(e.Language))
		if err != nil {
			return fmt.Errorf("insert entry %d: %w", e.Timestamp, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit entries: %w", err)
	}
	return nil
}

// Language returns the stored language preference or language.ErrNotSet.
func (s *Store) Language(ctx context.Context) (language.Code, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, languageKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", language.ErrNotSet
		}
		return "", fmt.Errorf("query language: %w", err)
	}

	code, err := language.Parse(value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", language.ErrNotSet, err)
	}
	return code, nil
}

// SetLanguage persists the language preference.
func (s *Store) SetLanguage(ctx context.Context, code language.Code) error {
	if !code.Valid() {
		return fmt.Errorf("unsupported language %q", code)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		languageKey, string(code))
	if err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	return nil
}

var (
	_ history.Persister = (*Store)(nil)
	_ language.Store    = (*Store)(nil)
)

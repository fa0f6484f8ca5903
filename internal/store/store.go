// Package store provides the SQLite-backed install ledger kept in each
// destination directory: which skills were installed from where, plus the
// last registry fetched from the remote source.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the ledger's file name inside a destination directory.
const FileName = ".skillbox.db"

// InstallState tracks one materialized skill.
type InstallState struct {
	Name     string
	Category string
	Version  string
	// Mode is "local" (link or copy) or "remote" (downloaded document).
	Mode string
	// Source is the directory linked to or the URL downloaded from.
	Source      string
	Path        string
	InstalledAt time.Time
}

// RegistryEntry is one cached record of the last fetched registry.
type RegistryEntry struct {
	Category    string
	Name        string
	Description string
	CachedAt    time.Time
}

// Store wraps a SQLite database holding the ledger.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) a SQLite database at dbPath and ensures
// all required tables exist. Use ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS installs (
			name         TEXT PRIMARY KEY,
			category     TEXT NOT NULL,
			version      TEXT NOT NULL DEFAULT '',
			mode         TEXT NOT NULL,
			source       TEXT NOT NULL,
			path         TEXT NOT NULL,
			installed_at DATETIME NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE TABLE IF NOT EXISTS registry_cache (
			category    TEXT NOT NULL,
			name        TEXT NOT NULL,
			description TEXT NOT NULL,
			position    INTEGER NOT NULL,
			cached_at   DATETIME NOT NULL DEFAULT (datetime('now')),
			PRIMARY KEY (category, name)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// SaveInstall records an installed skill, replacing any earlier record
// with the same name.
func (s *Store) SaveInstall(state InstallState) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO installs (name, category, version, mode, source, path, installed_at)
		 VALUES (?, ?, ?, ?, ?, ?, datetime('now'))`,
		state.Name, state.Category, state.Version, state.Mode, state.Source, state.Path,
	)
	if err != nil {
		return fmt.Errorf("save install: %w", err)
	}
	return nil
}

// GetInstall retrieves the install record for a skill by name.
// Returns nil if the skill is not recorded.
func (s *Store) GetInstall(name string) (*InstallState, error) {
	var st InstallState
	err := s.db.QueryRow(
		`SELECT name, category, version, mode, source, path, installed_at
		 FROM installs WHERE name = ?`, name,
	).Scan(&st.Name, &st.Category, &st.Version, &st.Mode, &st.Source, &st.Path, &st.InstalledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get install: %w", err)
	}
	return &st, nil
}

// ListInstalls returns every install record, sorted by category then name.
func (s *Store) ListInstalls() ([]InstallState, error) {
	rows, err := s.db.Query(
		`SELECT name, category, version, mode, source, path, installed_at
		 FROM installs ORDER BY category, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list installs: %w", err)
	}
	defer rows.Close()

	var states []InstallState
	for rows.Next() {
		var st InstallState
		if err := rows.Scan(&st.Name, &st.Category, &st.Version, &st.Mode, &st.Source, &st.Path, &st.InstalledAt); err != nil {
			return nil, fmt.Errorf("scan install: %w", err)
		}
		states = append(states, st)
	}
	return states, rows.Err()
}

// DeleteInstall removes the record for name and reports whether one existed.
func (s *Store) DeleteInstall(name string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM installs WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("delete install: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete install: %w", err)
	}
	return n > 0, nil
}

// ReplaceRegistryCache swaps the cached registry for entries in a single
// transaction. Entry order is preserved.
func (s *Store) ReplaceRegistryCache(entries []RegistryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM registry_cache`); err != nil {
		return fmt.Errorf("clear registry cache: %w", err)
	}
	for i, e := range entries {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO registry_cache (category, name, description, position, cached_at)
			 VALUES (?, ?, ?, ?, datetime('now'))`,
			e.Category, e.Name, e.Description, i,
		)
		if err != nil {
			return fmt.Errorf("cache registry entry: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache update: %w", err)
	}
	return nil
}

// CachedRegistry returns the cached registry in its original order, or an
// empty slice if nothing was cached.
func (s *Store) CachedRegistry() ([]RegistryEntry, error) {
	rows, err := s.db.Query(
		`SELECT category, name, description, cached_at
		 FROM registry_cache ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("read registry cache: %w", err)
	}
	defer rows.Close()

	var entries []RegistryEntry
	for rows.Next() {
		var e RegistryEntry
		if err := rows.Scan(&e.Category, &e.Name, &e.Description, &e.CachedAt); err != nil {
			return nil, fmt.Errorf("scan registry cache: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Package store owns the embedded SQLite database: opening and
// configuring the connection, the versioned migration runner, and the
// repositories the engine's collaborators persist through.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the serialized database connection.
type Store struct {
	db   *sql.DB
	conn *Conn
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas, and caps the pool at a single connection: the embedded store
// does not support concurrent writers, so every caller funnels through
// Conn. Open does not migrate; run a Migrator before using repositories.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	return &Store{db: db, conn: NewConn(db)}, nil
}

// Conn returns the serialized connection manager.
func (s *Store) Conn() *Conn {
	return s.conn
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// MixRepo returns a CustomMix repository backed by this store.
func (s *Store) MixRepo() *MixRepo {
	return &MixRepo{conn: s.conn}
}

// ResultRepo returns a quiz result repository backed by this store.
func (s *Store) ResultRepo() *ResultRepo {
	return &ResultRepo{conn: s.conn}
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUIZDECK_DB environment variable
// 2. $XDG_DATA_HOME/quizdeck/quizdeck.db
// 3. ~/.local/share/quizdeck/quizdeck.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZDECK_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizdeck", "quizdeck.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

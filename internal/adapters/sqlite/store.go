package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"dsaudit/internal/config"
	"dsaudit/internal/domain"
	"dsaudit/internal/ports"
)

const schemaVersion = "1"

// IgnoreStore implements ports.IgnoreStore using SQLite
type IgnoreStore struct {
	db     *sql.DB
	dbPath string
}

// Ensure IgnoreStore implements ports.IgnoreStore
var _ ports.IgnoreStore = (*IgnoreStore)(nil)

// NewIgnoreStore creates a new SQLite ignore store
func NewIgnoreStore() *IgnoreStore {
	return &IgnoreStore{}
}

// Open initializes the store at dbPath, creating the schema if needed
func (s *IgnoreStore) Open(dbPath string) error {
	expanded, err := config.ExpandHome(dbPath)
	if err != nil {
		return err
	}
	s.dbPath = expanded

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(s.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", s.dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS ignores (
			document_key TEXT NOT NULL,
			kind TEXT NOT NULL,
			key TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
			PRIMARY KEY (document_key, kind, key)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_ignores_document ON ignores(document_key);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *IgnoreStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns every ignore recorded for a document
func (s *IgnoreStore) Load(documentKey string) (domain.IgnoreSets, error) {
	sets := domain.NewIgnoreSets()

	rows, err := s.db.Query(`
		SELECT kind, key FROM ignores
		WHERE document_key = ?
		ORDER BY created_at, key
	`, documentKey)
	if err != nil {
		return sets, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind, key string
		if err := rows.Scan(&kind, &key); err != nil {
			return sets, err
		}
		k, ok := domain.ParseIgnoreKind(kind)
		if !ok {
			continue
		}
		sets.Add(k, key)
	}

	return sets, rows.Err()
}

// Add records an ignore; adding an existing one is a no-op
func (s *IgnoreStore) Add(documentKey string, kind domain.IgnoreKind, key string) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO ignores (document_key, kind, key)
		VALUES (?, ?, ?)
	`, documentKey, string(kind), key)
	return err
}

// Remove deletes an ignore
func (s *IgnoreStore) Remove(documentKey string, kind domain.IgnoreKind, key string) error {
	_, err := s.db.Exec(`
		DELETE FROM ignores WHERE document_key = ? AND kind = ? AND key = ?
	`, documentKey, string(kind), key)
	return err
}

// Clear deletes every ignore of a document
func (s *IgnoreStore) Clear(documentKey string) error {
	_, err := s.db.Exec(`DELETE FROM ignores WHERE document_key = ?`, documentKey)
	return err
}

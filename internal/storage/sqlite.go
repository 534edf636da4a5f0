package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps blobs as rows in a single-table SQLite database.
// Useful on platforms where a directory of loose files is awkward
// (one artifact to back up or sync instead of several).
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS blobs (
		name TEXT PRIMARY KEY,
		data BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize sqlite store: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// ReadBytes reads the named blob. A missing row is not an error.
func (s *SQLiteStore) ReadBytes(name string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM blobs WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, true, nil
}

// WriteBytes writes the named blob, replacing any existing row.
func (s *SQLiteStore) WriteBytes(name string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO blobs (name, data) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data`,
		name, data,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore returns a Store backed by a local sqlite file, creating
// the collections table when it does not exist yet.
func NewSQLiteStore(ctx context.Context, path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Whole-collection writes are serialized anyway; a single connection
	// avoids SQLITE_BUSY on concurrent readers.
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create collections table: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

// Load implements Store.
func (s *sqliteStore) Load(ctx context.Context, collection string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE name = ?`, collection).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // collection never written
		}
		return nil, fmt.Errorf("failed to load collection %q: %w", collection, err)
	}

	return data, nil
}

// Save implements Store.
func (s *sqliteStore) Save(ctx context.Context, collection string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (name, data, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, collection, data)
	if err != nil {
		return fmt.Errorf("failed to save collection %q: %w", collection, err)
	}

	return nil
}

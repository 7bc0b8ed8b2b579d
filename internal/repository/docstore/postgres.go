package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadirku/hadirku-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type postgresStore struct {
	db *database.DB
}

// NewPostgresStore returns a Store backed by a single collections table,
// creating the table when it does not exist yet.
func NewPostgresStore(ctx context.Context, db *database.DB) (Store, error) {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create collections table: %w", err)
	}

	return &postgresStore{db: db}, nil
}

// Load implements Store.
func (s *postgresStore) Load(ctx context.Context, collection string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM collections WHERE name = $1`, collection).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // collection never written
		}
		return nil, fmt.Errorf("failed to load collection %q: %w", collection, err)
	}

	return data, nil
}

// Save implements Store.
func (s *postgresStore) Save(ctx context.Context, collection string, data []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO collections (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`, collection, data)
	if err != nil {
		return fmt.Errorf("failed to save collection %q: %w", collection, err)
	}

	return nil
}

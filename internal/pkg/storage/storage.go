package storage

import (
	"context"
	"io"
)

type FileStorage interface {
	// Upload writes a file and returns the stored path/key
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// GetURL returns the public URL for a stored path
	GetURL(path string) string

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}

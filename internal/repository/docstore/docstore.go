// Package docstore persists whole collections as single JSON documents.
// Callers load a full collection, mutate it in memory, and write the full
// collection back; there is no record-level access and no transaction
// discipline (the stores are single-writer by contract).
package docstore

import "context"

// Collection identifiers, stable across versions for compatibility.
const (
	CollectionAccounts      = "accounts"
	CollectionAttendance    = "attendance"
	CollectionLeaveRequests = "leave-requests"
	CollectionConfig        = "config"
)

// Store reads and writes one JSON document per collection name.
type Store interface {
	// Load returns the stored document, or (nil, nil) when the collection
	// has never been written
	Load(ctx context.Context, collection string) ([]byte, error)

	// Save overwrites the stored document
	Save(ctx context.Context, collection string, data []byte) error
}

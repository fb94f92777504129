package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Snapshot is a stored collection blob together with its last write time.
type Snapshot struct {
	Key       string
	Data      []byte
	UpdatedAt time.Time
}

// CollectionStore keeps each collection as a single serialized document
// under a storage key.
type CollectionStore struct {
	db *sql.DB
}

func NewCollectionStore(db *sql.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

// Load returns the document stored under key, or nil when the key has never
// been written.
func (s *CollectionStore) Load(ctx context.Context, key string) (*Snapshot, error) {
	snap := &Snapshot{Key: key}
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data, updated_at FROM collections WHERE storage_key = ?
	`, key).Scan(&data, &snap.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	snap.Data = []byte(data)
	return snap, nil
}

// Save writes data under key, replacing any previous document.
func (s *CollectionStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (storage_key, data) VALUES (?, ?)
		ON CONFLICT(storage_key) DO UPDATE SET
			data       = excluded.data,
			updated_at = datetime('now')
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

// Delete removes the document under key. Deleting a missing key is not an error.
func (s *CollectionStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM collections WHERE storage_key = ?
	`, key); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

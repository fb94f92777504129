package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/tastetrails/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestCollectionStoreLoadMissing(t *testing.T) {
	s := NewCollectionStore(openTestDB(t))

	snap, err := s.Load(context.Background(), "taste-trails-data")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestCollectionStoreSaveAndLoad(t *testing.T) {
	s := NewCollectionStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "taste-trails-data", []byte(`[{"id":"a"}]`)))

	snap, err := s.Load(ctx, "taste-trails-data")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "taste-trails-data", snap.Key)
	assert.JSONEq(t, `[{"id":"a"}]`, string(snap.Data))
	assert.False(t, snap.UpdatedAt.IsZero())
}

func TestCollectionStoreSaveOverwrites(t *testing.T) {
	s := NewCollectionStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "k", []byte(`[1]`)))
	require.NoError(t, s.Save(ctx, "k", []byte(`[2]`)))

	snap, err := s.Load(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, `[2]`, string(snap.Data))
}

func TestCollectionStoreKeysAreIndependent(t *testing.T) {
	s := NewCollectionStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "one", []byte(`[1]`)))
	require.NoError(t, s.Save(ctx, "two", []byte(`[2]`)))

	snap, err := s.Load(ctx, "one")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, `[1]`, string(snap.Data))
}

func TestCollectionStoreDelete(t *testing.T) {
	s := NewCollectionStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "k", []byte(`[]`)))
	require.NoError(t, s.Delete(ctx, "k"))

	snap, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, snap)

	// Deleting again is a no-op.
	assert.NoError(t, s.Delete(ctx, "k"))
}

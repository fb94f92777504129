package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='collections'").Scan(&tableName)
	assert.NoError(t, err)
	assert.Equal(t, "collections", tableName)
}

func TestOpenForTestingIsolated(t *testing.T) {
	first, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })

	second, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	_, err = first.Exec("INSERT INTO collections (storage_key, data) VALUES ('k', '[]')")
	require.NoError(t, err)

	var n int
	require.NoError(t, second.QueryRow("SELECT COUNT(*) FROM collections").Scan(&n))
	assert.Zero(t, n)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tastetrails.db")

	first, err := Open(path)
	require.NoError(t, err)
	_, err = first.Exec("INSERT INTO collections (storage_key, data) VALUES ('taste-trails-data', '[]')")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, second.Close()) })

	var data string
	err = second.QueryRow("SELECT data FROM collections WHERE storage_key = 'taste-trails-data'").Scan(&data)
	assert.NoError(t, err)
	assert.Equal(t, "[]", data)
}

func TestRunMigrationsOnFreshConnection(t *testing.T) {
	db, err := sql.Open("sqlite", "file:migrate_fresh?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	require.NoError(t, runMigrations(db))

	var version int
	err = db.QueryRow("SELECT version FROM schema_migrations").Scan(&version)
	assert.NoError(t, err)
	assert.Equal(t, 1, version)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.NarratorBackend)
	assert.Equal(t, time.Now().Year(), cfg.WrappedYear)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/custom/db.sqlite")
	t.Setenv("NARRATOR_BACKEND", "claude")
	t.Setenv("CLAUDE_API_KEY", "sk-test123")
	t.Setenv("WRAPPED_YEAR", "2024")
	t.Setenv("WRAPPED_MIN_PLACES", "3")
	t.Setenv("ARCHIVE_BACKEND", "s3")
	t.Setenv("ARCHIVE_S3_BUCKET", "trails")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/db.sqlite", cfg.DBPath)
	assert.Equal(t, "claude", cfg.NarratorBackend)
	assert.Equal(t, "sk-test123", cfg.ClaudeAPIKey)
	assert.Equal(t, 2024, cfg.WrappedYear)
	assert.Equal(t, 3, cfg.WrappedMinPlaces)
	assert.Equal(t, "s3", cfg.ArchiveBackend)
	assert.Equal(t, "trails", cfg.S3Bucket)
}

func TestLoadInvalidNumber(t *testing.T) {
	t.Setenv("WRAPPED_YEAR", "next")

	_, err := Load("")
	assert.ErrorContains(t, err, "WRAPPED_YEAR")
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORAGE_KEY=from-file\nLOCALE=sv\n"), 0600))
	t.Setenv("LOCALE", "de")
	t.Cleanup(func() { _ = os.Unsetenv("STORAGE_KEY") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.StorageKey)
	assert.Equal(t, "de", cfg.Locale)
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

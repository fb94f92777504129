package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr       string
	DBPath           string
	StorageKey       string
	Locale           string
	WrappedYear      int
	WrappedMinPlaces int
	Timezone         string
	MaxImportBytes   int64
	ArchiveBackend   string
	ArchivePath      string
	S3Bucket         string
	S3Prefix         string
	AWSRegion        string
	NarratorBackend  string
	OllamaHost       string
	OllamaModel      string
	ClaudeAPIKey     string
	ClaudeModel      string
	LogLevel         string
	LogFormat        string
	LogFile          string
}

// Load reads the configuration from the environment. Variables from envFile
// are applied first without overriding ones already set; a missing envFile
// is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	year, err := getInt("WRAPPED_YEAR", time.Now().Year())
	if err != nil {
		return nil, err
	}
	minPlaces, err := getInt("WRAPPED_MIN_PLACES", 5)
	if err != nil {
		return nil, err
	}
	maxImport, err := getInt("MAX_IMPORT_BYTES", 10*1024*1024)
	if err != nil {
		return nil, err
	}

	return &Config{
		ListenAddr:       getEnv("LISTEN_ADDR", "127.0.0.1:8080"),
		DBPath:           getEnv("DB_PATH", "/data/tastetrails.db"),
		StorageKey:       getEnv("STORAGE_KEY", "taste-trails-data"),
		Locale:           getEnv("LOCALE", "en"),
		WrappedYear:      year,
		WrappedMinPlaces: minPlaces,
		Timezone:         getEnv("TZ_NAME", "UTC"),
		MaxImportBytes:   int64(maxImport),
		ArchiveBackend:   getEnv("ARCHIVE_BACKEND", "local"),
		ArchivePath:      getEnv("ARCHIVE_LOCAL_PATH", "/data/archives"),
		S3Bucket:         getEnv("ARCHIVE_S3_BUCKET", ""),
		S3Prefix:         getEnv("ARCHIVE_S3_PREFIX", "tastetrails/"),
		AWSRegion:        getEnv("AWS_REGION", ""),
		NarratorBackend:  getEnv("NARRATOR_BACKEND", "template"),
		OllamaHost:       getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:      getEnv("OLLAMA_MODEL", "llama3.2"),
		ClaudeAPIKey:     getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:      getEnv("CLAUDE_MODEL", "claude-3-5-haiku-latest"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		LogFile:          getEnv("LOG_FILE", ""),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	val, exists := os.LookupEnv(key)
	if !exists || val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return n, nil
}

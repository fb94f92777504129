package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/vbonduro/tastetrails/internal/archive"
	"github.com/vbonduro/tastetrails/internal/archive/local"
	s3archive "github.com/vbonduro/tastetrails/internal/archive/s3"
	"github.com/vbonduro/tastetrails/internal/config"
	"github.com/vbonduro/tastetrails/internal/db"
	"github.com/vbonduro/tastetrails/internal/logging"
	"github.com/vbonduro/tastetrails/internal/narrate"
	claudenarrate "github.com/vbonduro/tastetrails/internal/narrate/claude"
	ollamanarrate "github.com/vbonduro/tastetrails/internal/narrate/ollama"
	"github.com/vbonduro/tastetrails/internal/service"
	"github.com/vbonduro/tastetrails/internal/store"
	"github.com/vbonduro/tastetrails/internal/web"
)

func main() {
	envFile := flag.String("env", ".env", "optional file of environment variables")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx := context.Background()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	arch, err := newArchive(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize archive", "error", err)
		return
	}

	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		logger.Warn("unknown locale, using default", "locale", cfg.Locale, "error", err)
		locale = language.Und
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, using UTC", "timezone", cfg.Timezone, "error", err)
		loc = time.UTC
	}

	placeService := service.NewPlaceService(
		store.NewCollectionStore(database),
		newNarrator(cfg, logger),
		arch,
		logger,
		service.Options{
			StorageKey:      cfg.StorageKey,
			Locale:          locale,
			WrappedYear:     cfg.WrappedYear,
			WrappedMinTotal: cfg.WrappedMinPlaces,
			Location:        loc,
		},
	)
	if err := placeService.Load(ctx); err != nil {
		logger.Error("failed to load places", "error", err)
		return
	}

	server := web.NewServer(placeService, logger, cfg.MaxImportBytes)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

// newArchive returns nil when archiving is disabled.
func newArchive(ctx context.Context, cfg *config.Config, logger *slog.Logger) (archive.Archive, error) {
	switch cfg.ArchiveBackend {
	case "none":
		logger.Info("archiving disabled")
		return nil, nil
	case "s3":
		logger.Info("using S3 archive backend", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		return s3archive.NewS3Archive(ctx, cfg.S3Bucket, cfg.S3Prefix, cfg.AWSRegion)
	default:
		logger.Info("using local archive backend", "path", cfg.ArchivePath)
		return local.NewLocalArchive(cfg.ArchivePath)
	}
}

func newNarrator(cfg *config.Config, logger *slog.Logger) narrate.Narrator {
	switch cfg.NarratorBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Error("CLAUDE_API_KEY is required when NARRATOR_BACKEND=claude, using template narrator")
			return narrate.NewTemplateNarrator()
		}
		logger.Info("using Claude narrator", "model", cfg.ClaudeModel)
		return claudenarrate.NewClaudeNarrator(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	case "ollama":
		logger.Info("using Ollama narrator", "model", cfg.OllamaModel)
		return ollamanarrate.NewOllamaNarrator(cfg.OllamaHost, cfg.OllamaModel)
	default:
		logger.Info("using template narrator")
		return narrate.NewTemplateNarrator()
	}
}

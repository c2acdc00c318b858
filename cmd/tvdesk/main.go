package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alorle/tvdesk/internal/adapter/driven"
	"github.com/alorle/tvdesk/internal/adapter/driver"
	"github.com/alorle/tvdesk/internal/application"
	"github.com/alorle/tvdesk/internal/config"
	"github.com/alorle/tvdesk/internal/logging"
	"go.etcd.io/bbolt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Create structured logger
	logger, logCloser := logging.New(logging.Options{
		Level: cfg.LogLevel(),
		File:  cfg.Log.File,
	})
	defer func() {
		if err := logCloser.Close(); err != nil {
			log.Printf("error closing log file: %v", err)
		}
	}()
	slog.SetDefault(logger)

	logger.Info("starting tvdesk",
		"addr", cfg.Addr(),
		"db_path", cfg.DB.Path,
		"cache_dir", cfg.Cache.Dir,
		"log_level", cfg.LogLevel().String(),
		"epg_window", cfg.EPG.Window,
	)

	// Open BoltDB
	db, err := bbolt.Open(cfg.DB.Path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}()

	// Create driven adapters (repositories and external services)
	libraryRepo, err := driven.NewLibraryBoltDBRepository(db)
	if err != nil {
		log.Fatalf("failed to create library repository: %v", err)
	}

	guideRepo, err := driven.NewGuideBoltDBRepository(db)
	if err != nil {
		log.Fatalf("failed to create guide repository: %v", err)
	}

	playlistFetcher := driven.NewPlaylistHTTPFetcher(driven.PlaylistFetcherConfig{
		UserAgent:    cfg.Fetch.UserAgent,
		Timeout:      cfg.Fetch.Timeout,
		MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
	}, nil)

	epgFetcher := driven.NewEPGXMLFetcher(driven.EPGFetcherConfig{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.EPG.Timeout,
		Window:    cfg.EPG.Window,
	}, nil)

	logoCache := driven.NewLogoFileCache(driven.LogoCacheConfig{
		Dir:          cfg.Cache.Dir,
		UserAgent:    cfg.Fetch.UserAgent,
		Timeout:      cfg.Logos.Timeout,
		MaxDimension: cfg.Logos.MaxDimension,
	}, nil, logger)

	// Create application services
	playlistService := application.NewPlaylistService(playlistFetcher, logger)
	logoService := application.NewLogoService(logoCache, logger)
	epgService := application.NewEPGService(epgFetcher, guideRepo, logger)
	libraryService := application.NewLibraryService(libraryRepo, logger)
	healthService := application.NewHealthService(libraryRepo)

	if err := epgService.Restore(context.Background()); err != nil {
		logger.Warn("failed to restore program guide", "error", err)
	}

	spec, err := driver.LoadOpenAPISpec()
	if err != nil {
		log.Fatalf("failed to load API description: %v", err)
	}

	// Create HTTP handlers
	router := driver.NewRouter(driver.Handlers{
		Playlists: driver.NewPlaylistHTTPHandler(playlistService, libraryService),
		Logos:     driver.NewLogoHTTPHandler(logoService),
		EPG:       driver.NewEPGHTTPHandler(epgService),
		Settings:  driver.NewSettingsHTTPHandler(libraryService),
		Health:    driver.NewHealthHTTPHandler(healthService),
	}, spec, logger)

	// Create HTTP server. Playlist and guide loads can run for the full fetch
	// timeout, so the write timeout leaves room for the slower of the two.
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: max(cfg.Fetch.Timeout, cfg.EPG.Timeout) + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

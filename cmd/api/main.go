package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atharvakonge/gold-tracker/internal/client"
	"github.com/atharvakonge/gold-tracker/internal/config"
	"github.com/atharvakonge/gold-tracker/internal/db"
	"github.com/atharvakonge/gold-tracker/internal/handlers"
	"github.com/atharvakonge/gold-tracker/internal/logging"
	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/atharvakonge/gold-tracker/internal/notify"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	// Load .env file
	cfg, loaded, err := config.Load()
	log := logging.Default(cfg.LogLevel, cfg.GinMode)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if !loaded {
		log.Info().Msg("No .env file found, using defaults or environment variables")
	}

	// Set Gin mode based on environment
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	imports, closeDB := openImportLog(cfg.Database, log)
	defer closeDB()

	backend := client.New(cfg.BackendURL, client.WithLogger(log.With().Str("component", "client").Logger()))
	h := handlers.NewHandler(backend, models.NewCache(), handlers.Options{
		Notifier:     notify.New(cfg.ToastTTL),
		ImportLog:    imports,
		Logger:       &log,
		PushInterval: cfg.PricePushInterval,
	})
	router := handlers.NewRouter(h, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("backend", cfg.BackendURL).Msg("Server starting on http://localhost:" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	waitForShutdown(srv, log)
}

// openImportLog connects the audit store when one is configured.
// Without a database the import history is simply not kept.
func openImportLog(cfg config.DatabaseConfig, log zerolog.Logger) (db.ImportLog, func()) {
	if !cfg.Enabled() {
		return db.NopImportLog{}, func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := db.Open(ctx, cfg.ConnString())
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database, import audit disabled")
		return db.NopImportLog{}, func() {}
	}
	log.Info().Msg("Database connected successfully")
	return db.NewImportLog(store), func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(srv *http.Server, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("Server stopped")
}

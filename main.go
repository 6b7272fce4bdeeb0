package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/conduit-be/internal/api"
	"github.com/isdelr/conduit-be/internal/auth"
	"github.com/isdelr/conduit-be/internal/config"
	"github.com/isdelr/conduit-be/internal/database"
	"github.com/isdelr/conduit-be/internal/logger"
	"github.com/isdelr/conduit-be/internal/monitoring"
	"github.com/isdelr/conduit-be/internal/realtime"
	"github.com/isdelr/conduit-be/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	if cfg.SeedDemoData {
		if err := database.Seed(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	// Set up the realtime event hub
	hub := realtime.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	profileService := services.NewProfileService(db, userService)
	articleService := services.NewArticleService(db, hub)
	commentService := services.NewCommentService(db, hub)
	tagService := services.NewTagService(db)

	// Set up auth
	codec := auth.NewTokenCodec(cfg.JWTSecret)
	authMW := auth.NewMiddleware(codec, userService)

	// Set up and run the background content snapshotter
	snapshotter, err := monitoring.NewSnapshotter(db, cfg.SnapshotSchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.SnapshotSchedule).Msg("Invalid snapshot schedule")
	}
	go snapshotter.Run()

	// Set up router
	router := api.NewRouter(authMW, codec, hub, userService, profileService, articleService, commentService, tagService, cfg.AllowedOrigin)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		err := serve(srv, cfg)
		if err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	snapshotter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// serve starts the listener, preferring HTTPS when a cert/key pair is
// configured and readable, falling back to plain HTTP otherwise.
func serve(srv *http.Server, cfg *config.Config) error {
	if cfg.SSLCertFile != "" && cfg.SSLKeyFile != "" {
		_, certErr := os.Stat(cfg.SSLCertFile)
		_, keyErr := os.Stat(cfg.SSLKeyFile)
		if certErr == nil && keyErr == nil {
			log.Info().Int("port", cfg.ServerPort).Msg("API listening (HTTPS)")
			return srv.ListenAndServeTLS(cfg.SSLCertFile, cfg.SSLKeyFile)
		}
		log.Warn().AnErr("cert", certErr).AnErr("key", keyErr).Msg("SSL files not readable, falling back to HTTP")
	}

	log.Info().Int("port", cfg.ServerPort).Msg("API listening (HTTP)")
	return srv.ListenAndServe()
}

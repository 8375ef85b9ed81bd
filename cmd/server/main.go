package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/nano-social/backend/internal/router"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/anonto42/nano-social/backend/pkg/firebase"
	"github.com/anonto42/nano-social/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger := config.SetupLogger(cfg)

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize databases")
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	if err := config.Migrate(db.Postgres); err != nil {
		logger.Fatal().Err(err).Msg("Failed to auto migrate models")
	}
	logger.Info().Msg("PostgreSQL auto-migrations completed for all models.")

	// Initialize Firebase; only fatal when it is the session verifier
	ctx := context.Background()
	verifier, err := firebase.NewVerifier(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Firebase")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e, cfg, logger)

	// Setup routes and dependencies
	router.SetupRoutes(e, router.Dependencies{
		Config:   cfg,
		DB:       db.Postgres,
		Redis:    db.Redis,
		Verifier: verifier,
		Log:      logger,
	})

	metrics := echo.New()
	metrics.HideBanner = true
	metrics.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	go func() {
		if err := metrics.Start(":" + cfg.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = metrics.Shutdown(shutdownCtx)
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server exited")
}

// Command server runs the dealership vehicle inventory API.
//
// Bootstrap order: .env → config → logging → tracing → database → router →
// HTTP server with graceful shutdown. A missing store DSN aborts startup;
// there is no degraded mode without the database.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dealerhub/go-vehicle-backend/internal/config"
	httpapi "github.com/dealerhub/go-vehicle-backend/internal/http"
	"github.com/dealerhub/go-vehicle-backend/internal/observability"
	"github.com/dealerhub/go-vehicle-backend/internal/repo"
	"github.com/dealerhub/go-vehicle-backend/internal/sysutil"
)

// version is stamped into traces and the swagger spec.
const version = "1.0.0"

// @title        Vehicle Inventory API
// @version      1.0
// @description  REST API for the dealership vehicle inventory.
// @BasePath     /api
func main() {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, relying on environment")
	}

	// 2) Configuration; a missing DATABASE_URL is fatal here, not a runtime
	// error path.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// 3) Logging
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4) Tracing
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// 5) Database
	db, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store connection failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("store connected")

	// 6) Router and server
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// openStore connects to the configured record store. The Postgres driver is
// the production path; sqlite keeps local development self-contained.
func openStore(cfg config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == "sqlite" {
		return repo.OpenSQLite(cfg.DBPath)
	}
	return repo.OpenPostgres(cfg.DBDSN)
}

// Package main is the entry point for the booking widget server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/grand-plaza/internal/catalog"
	"github.com/pkordes/grand-plaza/internal/config"
	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/handler"
	"github.com/pkordes/grand-plaza/internal/kv"
	"github.com/pkordes/grand-plaza/internal/middleware"
	"github.com/pkordes/grand-plaza/internal/receipt"
	"github.com/pkordes/grand-plaza/internal/repo"
	"github.com/pkordes/grand-plaza/internal/service"
	"github.com/pkordes/grand-plaza/migrations"
	"github.com/pkordes/grand-plaza/openapi"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before ours is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ----------------------------------------------------------
	// The SQLite file holds bookings and accounts across restarts; the
	// session lives in memory and ends with the process.
	durable, err := kv.OpenSQLite(ctx, cfg.LocalStorePath)
	if err != nil {
		slog.Error("failed to open local store", "path", cfg.LocalStorePath, "error", err)
		os.Exit(1)
	}
	defer durable.Close()
	sessions := repo.NewSessionStore(kv.NewMemory(), logger)
	credentials := repo.NewCredentialStore(durable, cfg.BcryptCost, logger)

	var backend repo.BookingBackend = repo.NewLocalBackend(durable, logger)
	if cfg.DatabaseURL != "" {
		// pgxpool.New does not open connections immediately; WaitReady
		// keeps pinging in the background until Postgres answers.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		remote := repo.NewRemoteBackend(pool, logger)
		go func() {
			if err := remote.WaitReady(ctx, cfg.RemoteReadyInterval, migratePostgres(pool)); err != nil {
				slog.Warn("remote booking store never became ready", "error", err)
			}
		}()
		backend = repo.NewFallbackBackend(remote, backend, logger)
	}
	slog.Info("booking backend configured", "backend", backend.Name())

	bookings := repo.NewBookingRepository(backend, logger)
	bookings.OnChange(func(view []domain.Booking) {
		logger.Debug("booking view changed", "count", len(view))
	})
	bookings.Init(ctx, sessions)
	defer bookings.Close()

	// --- Services ---------------------------------------------------------
	items := catalog.Default()
	bookingSvc := service.NewBookingService(bookings, sessions, items, receipt.NewExporter(cfg.Hotel.Receipt()), logger)
	authSvc := service.NewAuthService(credentials, sessions, bookings, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv := handler.NewServer(bookingSvc, authSvc, items, openapi.Document, logger)
	r.Mount("/", handler.Handler(srv))

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migratePostgres returns a function that applies the remote-store schema
// through a database/sql view of pool.
func migratePostgres(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		db := stdlib.OpenDBFromPool(pool)
		defer db.Close()

		provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.Postgres)
		if err != nil {
			return err
		}
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}
		for _, res := range results {
			slog.Info("applied migration", "version", res.Source.Version, "duration", res.Duration)
		}
		return nil
	}
}

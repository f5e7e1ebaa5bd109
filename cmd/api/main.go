// Package main is the entry point for the transit API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
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
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/rbe-dev-920/tce-serv/internal/config"
	"github.com/rbe-dev-920/tce-serv/internal/events"
	"github.com/rbe-dev-920/tce-serv/internal/handler"
	"github.com/rbe-dev-920/tce-serv/internal/metrics"
	"github.com/rbe-dev-920/tce-serv/internal/middleware"
	"github.com/rbe-dev-920/tce-serv/internal/repo"
	"github.com/rbe-dev-920/tce-serv/internal/service"
	"github.com/rbe-dev-920/tce-serv/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log
	// aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// --- Metrics and events ----------------------------------------------
	collector := metrics.NewCollector()

	var publisher service.TripPublisher
	if cfg.NATSURL != "" {
		np, err := events.NewNATSPublisher(cfg.NATSURL, logger, collector)
		if err != nil {
			slog.Error("failed to connect to nats", "url", cfg.NATSURL, "error", err)
			os.Exit(1)
		}
		defer np.Close()
		publisher = np
		slog.Info("nats publisher connected", "url", cfg.NATSURL)
	}

	// --- Wiring -----------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	vehicleRepo := repo.NewVehicleRepo(pool)
	conductorRepo := repo.NewConductorRepo(pool)
	lineRepo := repo.NewLineRepo(pool)
	directionRepo := repo.NewDirectionRepo(pool)
	checkInRepo := repo.NewCheckInRepo(pool)
	deviceRepo := repo.NewDeviceRepo(pool)
	stopRepo := repo.NewStopRepo(pool)
	itineraryRepo := repo.NewItineraryRepo(pool)

	gate := middleware.NewReadinessGate()

	srv := handler.NewServer(handler.Deps{
		Trips:       service.NewTripService(tripRepo, directionRepo, lineRepo, publisher, collector),
		Vehicles:    service.NewVehicleService(vehicleRepo),
		Conductors:  service.NewConductorService(conductorRepo),
		Lines:       service.NewLineService(lineRepo, directionRepo),
		Directions:  service.NewDirectionService(directionRepo, lineRepo),
		CheckIns:    service.NewCheckInService(checkInRepo, tripRepo),
		Devices:     service.NewDeviceService(deviceRepo),
		Stops:       service.NewStopService(stopRepo),
		Itineraries: service.NewItineraryService(itineraryRepo, directionRepo, stopRepo),
		Gate:        gate,
	})

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS →
	// body cap → metrics. Health, readiness, and metrics endpoints are
	// mounted outside the readiness gate so they stay reachable during
	// startup; the gate only guards /api/v1.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(collector.Middleware())

	r.Get("/healthz", srv.GetHealth)
	r.Get("/readyz", srv.GetReady)
	r.Method(http.MethodGet, "/metrics", collector.Handler())
	r.Mount("/api/v1", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Startup probe ----------------------------------------------------
	// The server is already listening so /healthz and /metrics answer, but
	// /api/v1 returns 503 until the database is reachable and migrated.
	// The probe retries with fibonacci backoff for a bounded period; a
	// database that never shows up is a fatal configuration problem, not
	// something to limp along with.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		backoff := retry.WithMaxRetries(8, retry.NewFibonacci(500*time.Millisecond))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := pool.Ping(ctx); err != nil {
				slog.Warn("database not reachable yet", "error", err)
				return retry.RetryableError(err)
			}
			return nil
		})
		if err != nil {
			slog.Error("database never became reachable", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")

		if err := migrate(cfg.DatabaseURL); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}

		gate.MarkReady()
		slog.Info("server ready")
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies any pending embedded migrations. goose drives a
// database/sql connection, separate from the pgx pool used for queries.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "source", res.Source.Path)
	}
	return nil
}

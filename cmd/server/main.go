package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rutasegura/internal/alert/bridge"
	alerthandler "rutasegura/internal/alert/handler"
	alertmetrics "rutasegura/internal/alert/metrics"
	alertservice "rutasegura/internal/alert/service"
	alertstore "rutasegura/internal/alert/store"
	dependenthandler "rutasegura/internal/dependent/handler"
	dependentservice "rutasegura/internal/dependent/service"
	dependentstore "rutasegura/internal/dependent/store"
	"rutasegura/internal/home"
	identityhandler "rutasegura/internal/identity/handler"
	identitystore "rutasegura/internal/identity/store"
	"rutasegura/internal/jwtauth"
	medrecordmetrics "rutasegura/internal/medrecord/metrics"
	medrecordservice "rutasegura/internal/medrecord/service"
	"rutasegura/internal/platform/config"
	"rutasegura/internal/platform/httpserver"
	"rutasegura/internal/platform/logger"
	platformredis "rutasegura/internal/platform/redis"
	"rutasegura/pkg/platform/middleware/auth"
	"rutasegura/pkg/platform/middleware/requestid"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx := context.Background()

	var (
		alerts     alertstore.Store
		dependents dependentstore.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			fatal(log, "opening database", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			fatal(log, "pinging database", err)
		}
		if err := alertstore.EnsureSchema(ctx, db); err != nil {
			fatal(log, "ensuring alerts schema", err)
		}
		if err := dependentstore.EnsureSchema(ctx, db); err != nil {
			fatal(log, "ensuring dependents schema", err)
		}
		alerts = alertstore.NewPostgres(db)
		dependents = dependentstore.NewPostgres(db)
	} else {
		log.Warn("no DATABASE_URL configured, using in-memory stores")
		alerts = alertstore.NewInMemory()
		dependents = dependentstore.NewInMemory()
	}

	var selections identitystore.SelectionStore = identitystore.NewInMemory()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		fatal(log, "connecting to redis", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		selections = identitystore.NewRedis(redisClient.Client)
	}

	dependentSvc := dependentservice.New(dependents, dependentservice.WithLogger(log))
	alertSvc := alertservice.New(alerts, bridge.NewLogging(log),
		alertservice.WithLogger(log),
		alertservice.WithMetrics(alertmetrics.New()),
		alertservice.WithDependentDirectory(dependentSvc),
	)
	documentSvc := medrecordservice.New(dependents,
		medrecordservice.WithLogger(log),
		medrecordservice.WithMetrics(medrecordmetrics.New()),
	)

	jwtSvc := jwtauth.NewService(cfg.JWTSigningKey, "rutasegura")

	router := chi.NewRouter()
	router.Use(requestid.Middleware)
	router.Use(chimiddleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc, log))
		alerthandler.New(alertSvc, log).Register(r)
		dependenthandler.New(dependentSvc, documentSvc, log).Register(r)
		identityhandler.New(selections, log).Register(r)
		home.New(alertSvc, dependentSvc, selections, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting rutasegura", slog.String("addr", cfg.Addr))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(log, "server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fatal(log, "graceful shutdown failed", err)
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.Any("error", err))
	os.Exit(1)
}

package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/marketbay/marketbay/pkg/accounts"
	"github.com/marketbay/marketbay/pkg/api"
	"github.com/marketbay/marketbay/pkg/auth"
	"github.com/marketbay/marketbay/pkg/config"
	"github.com/marketbay/marketbay/pkg/observability"
	"github.com/marketbay/marketbay/pkg/rbac"
	"github.com/marketbay/marketbay/pkg/storage/postgres"
)

func main() {
	// best-effort: a missing .env means real env vars are in use
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := postgres.Open(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := postgres.RunMigrations(ctx, db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}
	if err := postgres.SeedRoles(ctx, db); err != nil {
		log.WithError(err).Fatal("failed to seed roles")
	}

	roleStore := rbac.NewStore(db)
	resolver, err := rbac.NewResolver(roleStore)
	if err != nil {
		log.WithError(err).Fatal("failed to create role resolver")
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	accountStore := accounts.NewPostgresStore(db)
	accountSvc := accounts.NewService(accountStore, hasher, tokens, resolver, cfg.Auth.DefaultRole, log)

	metrics := observability.NewMetrics()
	server := api.NewServer(db, accountSvc, roleStore, resolver, tokens, metrics, log)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("starting marketbay API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http server shutdown failed")
	}

	log.Info("goodbye")
}

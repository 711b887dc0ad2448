package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dosapp/discovery-api/internal/api"
	"github.com/dosapp/discovery-api/internal/core/ports"
	mongodb "github.com/dosapp/discovery-api/internal/infrastructure/db/mongo"
	rediscache "github.com/dosapp/discovery-api/internal/infrastructure/db/redis"
	"github.com/dosapp/discovery-api/internal/infrastructure/identity"
	"github.com/dosapp/discovery-api/internal/pkg/config"
	"github.com/dosapp/discovery-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "discovery-api",
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := rediscache.Connect(ctx, rediscache.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("identity verifier setup failed")
	}

	e := api.NewRouter(cfg, db, rdb, verifier)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

// newVerifier selects the identity verifier. Firebase is used whenever
// credentials are configured; the unverified dev parser is only permitted
// outside production.
func newVerifier(ctx context.Context, cfg *config.Config) (ports.IdentityVerifier, error) {
	if cfg.FirebaseCredentials != "" {
		return identity.NewFirebaseVerifier(ctx, cfg.FirebaseCredentials)
	}
	if cfg.IsProduction() {
		return nil, errors.New("firebase credentials are required in production")
	}
	return identity.NewInsecureVerifier(), nil
}

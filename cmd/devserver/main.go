// Command devserver runs the Gigsly marketplace backend used for local
// development and end-to-end testing of the client.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/gigsly/gigsly-client/internal/api"
	"github.com/gigsly/gigsly-client/internal/core/domain"
	mongodb "github.com/gigsly/gigsly-client/internal/infrastructure/db/mongo"
	redisdb "github.com/gigsly/gigsly-client/internal/infrastructure/db/redis"
	"github.com/gigsly/gigsly-client/internal/pkg/config"
	"github.com/gigsly/gigsly-client/pkg/logger"
)

const (
	setupTimeout    = 30 * time.Second
	shutdownTimeout = 10 * time.Second

	// devJWTSecret is only accepted with ENV=development.
	devJWTSecret = "gigsly-dev-secret-change-me"
)

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "devserver:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "gigsly-devserver",
	})

	secret := cfg.Server.JWTSecret
	if secret == "" {
		if !cfg.IsDevelopment() {
			return errors.New("JWT_SECRET is required outside development")
		}
		log.Warn().Msg("JWT_SECRET not set, using the built-in development secret")
		secret = devJWTSecret
	}

	setupCtx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	client, db, err := mongodb.Connect(setupCtx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	if err := prepare(setupCtx, db, log); err != nil {
		return err
	}

	// Redis only feeds the readiness probe here, so running without it is fine.
	var rdb redis.UniversalClient
	if c, err := redisdb.Connect(setupCtx, redisdb.Config{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		MasterName: cfg.Redis.MasterName,
	}); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, readiness will skip it")
	} else {
		rdb = c
		defer c.Close()
	}

	e := api.NewRouter(db, rdb, secret, cfg.Server.TokenTTL, log)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Server.Port
		log.Info().Str("addr", addr).Msg("devserver listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("devserver stopped")
	return nil
}

// prepare creates indexes and seeds the category list on a fresh database.
func prepare(ctx context.Context, db *mongodriver.Database, log zerolog.Logger) error {
	feedback := mongodb.NewFeedbackRepository(db)
	repos := map[string]indexer{
		"users":     mongodb.NewAuthRepository(db),
		"tasks":     mongodb.NewTaskRepository(db),
		"proposals": mongodb.NewProposalRepository(db),
		"feedback":  feedback,
	}
	for name, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("%s indexes: %w", name, err)
		}
	}

	if err := feedback.SeedCategories(ctx, domain.DefaultCategories); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	log.Debug().Int("categories", len(domain.DefaultCategories)).Msg("database prepared")
	return nil
}

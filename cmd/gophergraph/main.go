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

	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"
	"github.com/joho/godotenv"

	"github.com/talx-hub/gopher-graph/internal/api/handlers"
	"github.com/talx-hub/gopher-graph/internal/config"
	"github.com/talx-hub/gopher-graph/internal/dbmanager"
	"github.com/talx-hub/gopher-graph/internal/graph"
	"github.com/talx-hub/gopher-graph/internal/model"
	"github.com/talx-hub/gopher-graph/internal/pubsub"
	"github.com/talx-hub/gopher-graph/internal/repo"
	"github.com/talx-hub/gopher-graph/internal/router"
	"github.com/talx-hub/gopher-graph/internal/utils/auth"
	"github.com/talx-hub/gopher-graph/internal/utils/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	_ = godotenv.Load()

	bootstrapLog := logger.New(slog.LevelInfo)
	cfg := config.NewBuilder(bootstrapLog).FromEnv().FromFlags().GetConfig()
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	// The token-issuing path must not limp along without a secret.
	if cfg.SecretKey == "" {
		log.Error("SECRET_KEY is required")
		os.Exit(1)
	}
	if cfg.DatabaseURI == "" {
		log.Error("DATABASE_URI is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := dbmanager.New(cfg.DatabaseURI, log).
		Connect(ctx).
		Ping(ctx).
		ApplyMigrations(ctx)
	if err := db.Error(); err != nil {
		log.LogAttrs(ctx, slog.LevelError,
			"failed to prepare the DB",
			slog.Any(model.KeyLoggerError, err))
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repo.NewUserRepository(db.Pool, log)
	postRepo := repo.NewPostRepository(db.Pool, log)
	broker := pubsub.New()
	issuer := auth.NewJWT([]byte(cfg.SecretKey))

	resolver := graph.NewResolver(
		userRepo, postRepo, issuer, broker, cfg.MinPasswordEntropy, log)
	schema := graph.NewSchema(resolver)
	graphqlHandler := graphqlws.NewHandlerFunc(schema, &relay.Handler{Schema: schema})

	rt := router.New(cfg, log)
	rt.SetRouter(graphqlHandler, handlers.New(func(ctx context.Context) error {
		_, err := db.GetPool(ctx)
		return err
	}))

	srv := &http.Server{
		Addr:    cfg.RunAddr,
		Handler: rt.GetRouter(),
	}

	go func() {
		log.LogAttrs(ctx, slog.LevelInfo,
			"server is running",
			slog.String("address", cfg.RunAddr))
		if err := srv.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.LogAttrs(ctx, slog.LevelError,
				"server failed",
				slog.Any(model.KeyLoggerError, err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.LogAttrs(shutdownCtx, slog.LevelError,
			"failed to shutdown gracefully",
			slog.Any(model.KeyLoggerError, err))
	}
}

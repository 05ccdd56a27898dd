package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/election-service/internal/api/http"
	"github.com/spec-kit/election-service/internal/api/http/handlers"
	"github.com/spec-kit/election-service/internal/audit"
	"github.com/spec-kit/election-service/internal/auth"
	"github.com/spec-kit/election-service/internal/config"
	"github.com/spec-kit/election-service/internal/observability"
	"github.com/spec-kit/election-service/internal/persistence"
	"github.com/spec-kit/election-service/internal/repository"
	"github.com/spec-kit/election-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// The secret is validated before anything else touches the network: a
	// placeholder secret in production must never serve a single request.
	secret, err := auth.ProvisionSecret(cfg.Auth.JWTSecret, cfg.App.IsProduction(), logger)
	if err != nil {
		logger.Fatal("signing secret rejected", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	stateRepo := repository.NewStateRepository(pool)
	electionRepo := repository.NewElectionRepository(pool)
	candidateRepo := repository.NewCandidateRepository(pool)
	watchlistRepo := repository.NewWatchlistRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	tokenMgr := auth.NewTokenManager(secret, time.Duration(cfg.Auth.AccessTokenTTLHours)*time.Hour)
	authService := service.NewAuthService(userRepo, tokenMgr, cfg.Auth.BcryptCost)
	electionService := service.NewElectionService(
		stateRepo, electionRepo, candidateRepo,
		redis, time.Duration(cfg.Cache.TTLSeconds)*time.Second, logger,
	)
	watchlistService := service.NewWatchlistService(watchlistRepo, electionRepo)

	authMiddleware := auth.NewMiddleware(tokenMgr, logger)
	recorder := audit.NewRecorder(auditRepo, logger, cfg.Audit.QueueSize)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, recorder, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Elections:      handlers.NewElectionHandler(electionService),
		Watchlists:     handlers.NewWatchlistHandler(watchlistService),
		Audit:          handlers.NewAuditHandler(auditRepo),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	// Drain queued audit entries only after the server stops accepting
	// requests, so nothing new is enqueued mid-drain.
	recorder.Close(5 * time.Second)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

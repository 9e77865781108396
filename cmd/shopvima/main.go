package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/shopvima/shopvima/internal/app"
	"github.com/shopvima/shopvima/internal/auth"
	"github.com/shopvima/shopvima/internal/catalog"
	"github.com/shopvima/shopvima/internal/observability"
	"github.com/shopvima/shopvima/internal/platform/cache"
	"github.com/shopvima/shopvima/internal/platform/db"
	"github.com/shopvima/shopvima/internal/rbac"
	"github.com/shopvima/shopvima/internal/shared"
	"github.com/shopvima/shopvima/internal/users"
	"github.com/shopvima/shopvima/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "shopvima_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	rbacRepo := rbac.NewRepository(pool)
	if err := rbac.SeedPermissions(ctx, rbacRepo, shared.CoreScopes()); err != nil {
		logger.Error("seed permissions", slog.Any("error", err))
		os.Exit(1)
	}
	resolver := rbac.NewResolver(rbacRepo)
	gate := rbac.Gate{
		Resolver: resolver,
		Mapper:   rbac.ConventionMapper{Prefix: cfg.APIPrefix, Exclusions: cfg.GateExclusions},
		Logger:   logger,
	}

	metrics := observability.NewMetrics()

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, logger)
	authHandler := auth.NewHandler(logger, authService, resolver, sessionManager, csrfManager, metrics)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, shared.NewAuditLogger(pool))
	usersHandler := users.NewHandler(logger, usersService)

	rbacHandler := rbac.NewHandler(logger, rbacRepo)

	catalogRepo := catalog.NewRepository(pool)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, jobsClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		Gate:           gate,
		AuthHandler:    authHandler,
		UsersHandler:   usersHandler,
		RBACHandler:    rbacHandler,
		CatalogHandler: catalogHandler,
		JobsHandler:    jobsHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

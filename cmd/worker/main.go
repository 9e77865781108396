package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/shopvima/shopvima/internal/app"
	"github.com/shopvima/shopvima/internal/auth"
	"github.com/shopvima/shopvima/internal/catalog"
	jobmetrics "github.com/shopvima/shopvima/internal/jobs"
	"github.com/shopvima/shopvima/internal/platform/db"
	"github.com/shopvima/shopvima/internal/wooimport"
	"github.com/shopvima/shopvima/jobs"
)

func instrumented(metrics *jobmetrics.Metrics, job string, handler asynq.HandlerFunc) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track(job)
		return tracker.End(handler(ctx, t))
	}
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	metrics := jobmetrics.NewMetrics(nil)

	authRepo := auth.NewRepository(pool)
	cleanupHandler := jobs.NewSessionsCleanupHandler(logger, authRepo)

	handlers := []jobs.TaskHandler{
		{Type: jobs.TaskSessionsCleanup, Handler: instrumented(metrics, jobs.TaskSessionsCleanup, cleanupHandler)},
	}

	if cfg.WooConfigured() {
		catalogRepo := catalog.NewRepository(pool)
		wooClient := wooimport.NewClient(cfg.WooBaseURL, cfg.WooConsumerKey, cfg.WooConsumerSecret)
		importer := wooimport.NewImporter(logger, wooClient, catalogRepo, cfg.WooMediaDir)
		importHandler := jobs.NewCatalogImportHandler(logger, importer)
		handlers = append(handlers, jobs.TaskHandler{
			Type:    jobs.TaskCatalogImport,
			Handler: instrumented(metrics, jobs.TaskCatalogImport, importHandler),
		})
	} else {
		logger.Warn("woocommerce credentials missing, catalog import disabled")
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers:  handlers,
		Cron: []jobs.CronRegistration{
			{Spec: "45 3 * * *", Task: jobs.NewSessionsCleanupTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

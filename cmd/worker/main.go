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

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/btto/orgaccess/internal/app"
	jobmetrics "github.com/btto/orgaccess/internal/jobs"
	"github.com/btto/orgaccess/internal/observability"
	"github.com/btto/orgaccess/internal/platform/cache"
	"github.com/btto/orgaccess/internal/platform/db"
	"github.com/btto/orgaccess/internal/relations"
	"github.com/btto/orgaccess/jobs"
)

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

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	if cfg.RedisAddr == "" {
		return errors.New("worker: REDIS_ADDR is required")
	}
	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	relationCache := relations.NewCache(
		relations.NewRepository(pool, cfg.RelationMaxDepth),
		redisClient,
		cfg.RelationCacheTTL,
		relations.WithCacheLogger(logger),
		relations.WithCacheObserver(metrics),
	)
	if err := relationCache.ListenForInvalidation(ctx); err != nil {
		return err
	}
	bumpJob := jobs.NewRelationsCacheBumpJob(relationCache, logger, jobmetrics.NewMetrics(metrics.Registerer()))

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	var cron []jobs.CronRegistration
	if cfg.RelationBumpCron != "" {
		task, err := jobs.NewRelationsCacheBumpTask(jobs.RelationsCacheBumpPayload{Reason: "scheduled"})
		if err != nil {
			return err
		}
		cron = append(cron, jobs.CronRegistration{Spec: cfg.RelationBumpCron, Task: task, Options: []asynq.Option{asynq.MaxRetry(3)}})
	}
	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   redisOpts,
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskRelationsCacheBump, Handler: bumpJob.Handle},
		},
		Cron: cron,
	})
	if err != nil {
		return err
	}

	inspector := asynq.NewInspector(redisOpts)
	defer inspector.Close()
	jobClient := jobs.NewClient(redisOpts)
	defer jobClient.Close()

	srv := &http.Server{
		Addr: cfg.OpsAddr,
		Handler: app.NewRouter(app.RouterParams{
			Logger:     logger,
			Config:     cfg,
			Metrics:    metrics,
			JobHandler: jobs.NewHandler(inspector, jobClient, logger),
			Readiness: []app.ReadinessCheck{
				{Name: "postgres", Check: pool.Ping},
				{Name: "redis", Check: func(ctx context.Context) error { return cache.Ping(ctx, redisClient) }},
				{Name: "relation_cache", Check: func(ctx context.Context) error {
					_, err := relationCache.Version(ctx)
					return err
				}},
			},
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("ops server listening", slog.String("addr", cfg.OpsAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/btto/orgaccess/internal/access"
	"github.com/btto/orgaccess/internal/app"
	"github.com/btto/orgaccess/internal/directory"
	"github.com/btto/orgaccess/internal/observability"
	"github.com/btto/orgaccess/internal/platform/cache"
	"github.com/btto/orgaccess/internal/platform/db"
	"github.com/btto/orgaccess/internal/relations"
	"github.com/btto/orgaccess/jobs"
)

func connectLive(ctx context.Context, requestID string) (*deps, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg).With(slog.String("request_id", requestID))

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		return nil, err
	}
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// The oracle still answers from Postgres without Redis.
		logger.Warn("redis unavailable, relation cache disabled", slog.Any("error", err))
	}

	metrics := observability.NewMetrics()
	directories := directory.NewRepository(pool)
	cacheTTL := cfg.RelationCacheTTL
	if !cfg.RelationCacheEnabled() {
		cacheTTL = 0
	}
	oracle := relations.NewCache(
		relations.NewRepository(pool, cfg.RelationMaxDepth),
		redisClient,
		cacheTTL,
		relations.WithCacheLogger(logger),
		relations.WithCacheObserver(metrics),
	)
	engine := access.NewEngine(directories, directories, oracle,
		access.WithLogger(logger),
		access.WithRecorder(metrics),
	)

	d := &deps{
		engine: engine,
		users:  directories,
		bumper: oracle,
		logger: logger,
	}
	var jobClient *jobs.Client
	if cfg.RedisAddr != "" {
		jobClient = jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		d.enqueuer = jobClient
	}
	d.close = func() {
		if jobClient != nil {
			_ = jobClient.Close()
		}
		if redisClient != nil {
			_ = redisClient.Close()
		}
		pool.Close()
	}
	return d, nil
}

package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/btto/orgaccess/internal/jobs"
)

// VersionBumper is implemented by relations.Cache.
type VersionBumper interface {
	Bump(ctx context.Context) (int64, error)
}

// RelationsCacheBumpJob bumps the relation cache version so the next decision
// re-reads the management hierarchy.
type RelationsCacheBumpJob struct {
	Cache   VersionBumper
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewRelationsCacheBumpJob wires dependencies for the bump handler. metrics may be nil.
func NewRelationsCacheBumpJob(cache VersionBumper, logger *slog.Logger, metrics *jobmetrics.Metrics) *RelationsCacheBumpJob {
	return &RelationsCacheBumpJob{Cache: cache, Logger: logger, Metrics: metrics}
}

// Handle processes TaskRelationsCacheBump tasks.
func (j *RelationsCacheBumpJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Cache == nil {
		return errors.New("relations cache bump: handler not configured")
	}
	var payload RelationsCacheBumpPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	tracker := j.Metrics.Track(TaskRelationsCacheBump)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("reason", payload.Reason), slog.String("requested_by", payload.RequestedBy))
	version, err := j.Cache.Bump(ctx)
	if err != nil {
		logger.Error("bump relation cache", slog.Any("error", err))
		return err
	}
	logger.Info("relation cache bumped", slog.Int64("version", version))
	return nil
}

func (j *RelationsCacheBumpJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskRelationsCacheBump))
	}
	return slog.Default().With(slog.String("job", TaskRelationsCacheBump))
}

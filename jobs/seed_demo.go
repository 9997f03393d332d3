package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/qaforge/qaforge/internal/docstore"
	jobmetrics "github.com/qaforge/qaforge/internal/jobs"
	"github.com/qaforge/qaforge/internal/seed"
)

// SeedDemoJob writes the demo dataset.
type SeedDemoJob struct {
	Store    docstore.Store
	Logger   *slog.Logger
	Metrics  *jobmetrics.Metrics
	HashCost int
}

// NewSeedDemoJob wires dependencies for the seed handler.
func NewSeedDemoJob(store docstore.Store, logger *slog.Logger, metrics *jobmetrics.Metrics, hashCost int) *SeedDemoJob {
	return &SeedDemoJob{Store: store, Logger: logger, Metrics: metrics, HashCost: hashCost}
}

// Handle processes TaskSeedDemo tasks.
func (j *SeedDemoJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Store == nil {
		return errors.New("seed demo: handler not configured")
	}
	var payload SeedDemoPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	metrics := metricsOrDefault(j.Metrics)
	tracker := metrics.Track(TaskSeedDemo)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := jobLogger(j.Logger, TaskSeedDemo)
	result, err := seed.Demo(ctx, j.Store, seed.Options{Password: payload.Password, HashCost: j.HashCost})
	for collection, n := range result.Created {
		metrics.AddSeeded(collection, n)
	}
	if err != nil {
		logger.Error("seed demo data", slog.Any("error", err))
		return err
	}
	if result.Skipped {
		logger.Info("demo data already present")
		return nil
	}
	logger.Info("demo data seeded", slog.Any("created", result.Created))
	return nil
}

package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	jobmetrics "github.com/qaforge/qaforge/internal/jobs"
	"github.com/qaforge/qaforge/internal/rbac"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// PermissionsResetJob upserts the permission catalog and the admin role.
type PermissionsResetJob struct {
	Store   docstore.Store
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewPermissionsResetJob wires dependencies for the reset handler.
func NewPermissionsResetJob(store docstore.Store, logger *slog.Logger, metrics *jobmetrics.Metrics) *PermissionsResetJob {
	return &PermissionsResetJob{Store: store, Logger: logger, Metrics: metrics}
}

// Handle processes TaskPermissionsReset tasks.
func (j *PermissionsResetJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Store == nil {
		return errors.New("permissions reset: handler not configured")
	}
	var payload PermissionsResetPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	tracker := metricsOrDefault(j.Metrics).Track(TaskPermissionsReset)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := jobLogger(j.Logger, TaskPermissionsReset).With(slog.String("requested_by", payload.RequestedBy))
	result, err := rbac.Reset(ctx, j.Store)
	if err != nil {
		logger.Error("reset permissions", slog.Any("error", err))
		return err
	}
	metricsOrDefault(j.Metrics).AddSeeded(catalog.Permissions, result.Created)
	logger.Info("permissions reset",
		slog.Int("created", result.Created),
		slog.Int("restored", result.Restored),
		slog.String("admin_role", result.AdminID))
	return nil
}

func metricsOrDefault(m *jobmetrics.Metrics) *jobmetrics.Metrics {
	if m != nil {
		return m
	}
	return defaultJobMetrics
}

func jobLogger(logger *slog.Logger, job string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("job", job))
}

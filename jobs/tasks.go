package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskPermissionsReset rebuilds the permission catalog and admin role.
	TaskPermissionsReset = "permissions:reset"
	// TaskSeedDemo writes the demo dataset.
	TaskSeedDemo = "seed:demo"
)

// PermissionsResetPayload carries the reason a reset was requested.
type PermissionsResetPayload struct {
	RequestedBy string `json:"requested_by,omitempty"`
}

// SeedDemoPayload tunes the demo dataset.
type SeedDemoPayload struct {
	Password string `json:"password,omitempty"`
}

// NewPermissionsResetTask constructs a permissions reset task.
func NewPermissionsResetTask(payload PermissionsResetPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPermissionsReset, data, asynq.MaxRetry(3)), nil
}

// NewSeedDemoTask constructs a demo seed task. Only one seed task may be
// queued at a time.
func NewSeedDemoTask(payload SeedDemoPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSeedDemo, data, asynq.MaxRetry(1), asynq.TaskID(TaskSeedDemo)), nil
}

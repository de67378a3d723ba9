package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskRelationsCacheBump invalidates every cached management answer.
	TaskRelationsCacheBump = "relations:cache_bump"
)

// RelationsCacheBumpPayload describes why the management hierarchy changed.
type RelationsCacheBumpPayload struct {
	Reason      string `json:"reason,omitempty"`
	RequestedBy string `json:"requested_by,omitempty"`
}

// NewRelationsCacheBumpTask constructs an Asynq task.
func NewRelationsCacheBumpTask(payload RelationsCacheBumpPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRelationsCacheBump, data, asynq.MaxRetry(5)), nil
}

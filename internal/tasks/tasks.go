package tasks

import (
	"github.com/hibiken/asynq"
)

// Task type names registered with the worker.
const (
	// TypePresenceSweep deactivates participants whose heartbeat went stale.
	TypePresenceSweep = "presence:sweep"

	// TypeChangeCompaction deletes change-log entries past the retention
	// window.
	TypeChangeCompaction = "changes:compact"
)

// Both periodic tasks carry no payload; the thresholds live with the
// handlers.

func NewPresenceSweepTask() (*asynq.Task, error) {
	return asynq.NewTask(TypePresenceSweep, nil), nil
}

func NewChangeCompactionTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeChangeCompaction, nil), nil
}

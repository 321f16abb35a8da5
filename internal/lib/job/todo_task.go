package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/go-todos/internal/model"
	"github.com/hibiken/asynq"
)

const (
	// TaskTodoEvent is the job type name stored in Redis.
	TaskTodoEvent = "todo:event"

	// EventCountersKey is the Redis hash holding one counter per event type.
	EventCountersKey = "todos:events"
)

// NewTodoEventTask wraps a lifecycle event into an Asynq task.
//
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("default"): events are not urgent
//   - Timeout(30s): kill the task if the handler hangs
func NewTodoEventTask(event model.TodoEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskTodoEvent,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

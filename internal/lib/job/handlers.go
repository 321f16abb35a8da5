package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/go-todos/internal/model"
	"github.com/hibiken/asynq"
)

// handleTodoEventTask records a todo lifecycle event.
//
// Every event is logged as an audit line and counted per type in the
// EventCountersKey hash.
func (j *JobService) handleTodoEventTask(ctx context.Context, t *asynq.Task) error {
	var event model.TodoEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		// A payload that cannot be decoded will never succeed; skip retries.
		return fmt.Errorf("failed to unmarshal todo event payload: %v: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", string(event.Type)).
		Str("todo_id", event.TodoID.String()).
		Time("at", event.At).
		Msg("Processing todo event")

	if j.redis == nil {
		return nil
	}

	if err := j.redis.HIncrBy(ctx, EventCountersKey, string(event.Type), 1).Err(); err != nil {
		j.logger.Error().
			Str("type", string(event.Type)).
			Str("todo_id", event.TodoID.String()).
			Err(err).
			Msg("Failed to record todo event")
		return err
	}

	return nil
}

// EventCounts returns how many events of each type were processed.
func (j *JobService) EventCounts(ctx context.Context) (map[string]string, error) {
	if j.redis == nil {
		return map[string]string{}, nil
	}
	return j.redis.HGetAll(ctx, EventCountersKey).Result()
}

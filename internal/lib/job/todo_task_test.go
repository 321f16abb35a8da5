package job

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/go-todos/internal/model"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTodoEventTask(t *testing.T) {
	event := model.TodoEvent{
		Type:   model.TodoCreated,
		TodoID: uuid.New(),
		At:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	task, err := NewTodoEventTask(event)
	require.NoError(t, err)
	assert.Equal(t, TaskTodoEvent, task.Type())

	var decoded model.TodoEvent
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, event, decoded)
}

func TestHandleTodoEventTask_LogsWithoutRedis(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	j := &JobService{logger: &logger}

	task, err := NewTodoEventTask(model.TodoEvent{Type: model.TodoDeleted, TodoID: uuid.New(), At: time.Now()})
	require.NoError(t, err)

	require.NoError(t, j.handleTodoEventTask(context.Background(), task))
	assert.Contains(t, buf.String(), "Processing todo event")
	assert.Contains(t, buf.String(), `"type":"deleted"`)

	counts, err := j.EventCounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestHandleTodoEventTask_BadPayloadSkipsRetry(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}

	err := j.handleTodoEventTask(context.Background(), asynq.NewTask(TaskTodoEvent, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

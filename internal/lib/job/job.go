// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - Mutations enqueue todo events (producer) using asynq.Client.
//   - A server runs workers that process those events (consumer) using asynq.Server.
package job

import (
	"context"

	"github.com/deppfellow/go-todos/internal/config"
	"github.com/deppfellow/go-todos/internal/model"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	// redis is used by handlers for event counters.
	redis *redis.Client
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks more worker share than "default" and
// "low".
func NewJobService(logger *zerolog.Logger, cfg *config.Config, rdb *redis.Client) *JobService {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
		redis:  rdb,
	}
}

// Start registers task handlers and starts the worker server.
// Start does not block; Stop shuts the workers down.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTodoEvent, j.handleTodoEventTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return errors.Wrap(err, "failed to start job server")
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// PublishTodoEvent enqueues event for the worker.
func (j *JobService) PublishTodoEvent(ctx context.Context, event model.TodoEvent) error {
	task, err := NewTodoEventTask(event)
	if err != nil {
		return errors.Wrap(err, "failed to build todo event task")
	}

	if _, err := j.Client.EnqueueContext(ctx, task); err != nil {
		return errors.Wrap(err, "failed to enqueue todo event")
	}

	return nil
}

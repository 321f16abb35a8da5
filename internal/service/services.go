package service

import (
	"github.com/deppfellow/go-todos/internal/lib/job"
	"github.com/deppfellow/go-todos/internal/repository"
	"github.com/deppfellow/go-todos/internal/server"
)

type Services struct {
	Todos *TodoService
	Job   *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	todoService := NewTodoService(s.Logger, repos.Todos)

	// A nil *JobService must not end up inside the interface.
	if s.Job != nil {
		todoService.events = s.Job
	}

	return &Services{
		Todos: todoService,
		Job:   s.Job,
	}, nil
}

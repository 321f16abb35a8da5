package repository

import (
	"github.com/deppfellow/go-todos/internal/database"
	"github.com/deppfellow/go-todos/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Todos *TodoRepository
}

// NewRepositories builds every repository on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	var pool database.Querier
	if s.DB != nil {
		pool = s.DB.Pool
	}

	return &Repositories{
		Todos: NewTodoRepository(pool),
	}
}

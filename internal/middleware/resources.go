package middleware

import (
	"github.com/deppfellow/go-todos/internal/database"
	"github.com/deppfellow/go-todos/internal/server"
	"github.com/labstack/echo/v4"
)

// DatabaseKey is the Echo context key of the *database.Database.
const DatabaseKey = "db"

// ResourceMiddleware hands the shared resources created at startup to every
// request.
type ResourceMiddleware struct {
	db *database.Database
}

func NewResourceMiddleware(s *server.Server) *ResourceMiddleware {
	return &ResourceMiddleware{db: s.DB}
}

// Inject stores the database handle in the Echo context and in the request
// context, where the repositories look for it.
func (rm *ResourceMiddleware) Inject() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rm.db == nil {
				return next(c)
			}

			c.Set(DatabaseKey, rm.db)
			c.SetRequest(c.Request().WithContext(database.NewContext(c.Request().Context(), rm.db)))

			return next(c)
		}
	}
}

// GetDatabase returns the handle stored by Inject.
func GetDatabase(c echo.Context) (*database.Database, bool) {
	db, ok := c.Get(DatabaseKey).(*database.Database)
	return db, ok && db != nil
}

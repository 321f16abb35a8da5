package database

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying db.
func NewContext(ctx context.Context, db *Database) context.Context {
	return context.WithValue(ctx, contextKey{}, db)
}

// FromContext returns the Database placed on ctx by NewContext, if any.
func FromContext(ctx context.Context) (*Database, bool) {
	db, ok := ctx.Value(contextKey{}).(*Database)
	return db, ok && db != nil
}

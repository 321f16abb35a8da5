package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Todo is a single item of the todo list.
type Todo struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Completed bool      `json:"completed" db:"completed"`
}

// NewTodo returns a not yet completed Todo with a freshly generated id.
func NewTodo(text string) Todo {
	return Todo{
		ID:        uuid.New(),
		Text:      text,
		Completed: false,
	}
}

// TodoPatch is a partial update. Nil fields keep their stored value.
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Text == nil && p.Completed == nil
}

// Apply returns t with every present field of p applied.
func (p TodoPatch) Apply(t Todo) Todo {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// Pagination bounds a list query. A nil Limit means unbounded and a nil
// Offset means zero.
type Pagination struct {
	Offset *int64
	Limit  *int64
}

// OffsetOrDefault returns the offset to use in the query.
func (p Pagination) OffsetOrDefault() int64 {
	if p.Offset == nil {
		return 0
	}
	return *p.Offset
}

// OptionalInt64 is a query parameter that remembers whether it was present.
// It implements echo.BindUnmarshaler.
type OptionalInt64 struct {
	Value int64
	Set   bool
}

func (o *OptionalInt64) UnmarshalParam(param string) error {
	v, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return err
	}
	o.Value = v
	o.Set = true
	return nil
}

// Ptr returns nil when the parameter was absent.
func (o OptionalInt64) Ptr() *int64 {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// TodoEventType names a todo lifecycle transition.
type TodoEventType string

const (
	TodoCreated TodoEventType = "created"
	TodoUpdated TodoEventType = "updated"
	TodoDeleted TodoEventType = "deleted"
)

// TodoEvent is published after a mutation has been committed.
type TodoEvent struct {
	Type   TodoEventType `json:"type"`
	TodoID uuid.UUID     `json:"todo_id"`
	At     time.Time     `json:"at"`
}

package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTodo(t *testing.T) {
	a := NewTodo("buy milk")
	b := NewTodo("buy milk")

	assert.Equal(t, "buy milk", a.Text)
	assert.False(t, a.Completed)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTodoPatch_Apply(t *testing.T) {
	original := Todo{ID: uuid.New(), Text: "buy milk", Completed: false}
	done := true
	text := "buy oat milk"

	t.Run("completed only keeps text", func(t *testing.T) {
		got := TodoPatch{Completed: &done}.Apply(original)
		assert.Equal(t, "buy milk", got.Text)
		assert.True(t, got.Completed)
		assert.Equal(t, original.ID, got.ID)
	})

	t.Run("text only keeps completed", func(t *testing.T) {
		got := TodoPatch{Text: &text}.Apply(original)
		assert.Equal(t, text, got.Text)
		assert.False(t, got.Completed)
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		p := TodoPatch{}
		assert.True(t, p.IsEmpty())
		assert.Equal(t, original, p.Apply(original))
	})
}

func TestTodo_JSONShape(t *testing.T) {
	id := uuid.MustParse("5f0c5b0e-7f5e-4c61-9b0e-0c1f5a3d2e11")
	raw, err := json.Marshal(Todo{ID: id, Text: "buy milk"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"5f0c5b0e-7f5e-4c61-9b0e-0c1f5a3d2e11","text":"buy milk","completed":false}`, string(raw))
}

func TestOptionalInt64(t *testing.T) {
	var o OptionalInt64
	assert.Nil(t, o.Ptr())

	require.NoError(t, o.UnmarshalParam("5"))
	require.NotNil(t, o.Ptr())
	assert.Equal(t, int64(5), *o.Ptr())

	assert.Error(t, (&OptionalInt64{}).UnmarshalParam("five"))
}

func TestPagination_OffsetOrDefault(t *testing.T) {
	assert.Equal(t, int64(0), Pagination{}.OffsetOrDefault())

	off := int64(3)
	assert.Equal(t, int64(3), Pagination{Offset: &off}.OffsetOrDefault())
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// TodoID is a value object for todo identity.
type TodoID struct{ uuid.UUID }

// NewTodoID creates a new TodoID from uuid.
func NewTodoID(id uuid.UUID) TodoID { return TodoID{UUID: id} }

// String returns the canonical string form.
func (t TodoID) String() string { return t.UUID.String() }

// Todo is a user-owned todo item.
type Todo struct {
	ID        TodoID
	UserID    UserID
	Title     string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

package todos

import (
	"context"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain"
)

// ListTodos returns the todos owned by one user.
type ListTodos struct {
	todos ports.TodoRepository
}

func NewListTodos(todos ports.TodoRepository) *ListTodos {
	return &ListTodos{todos: todos}
}

func (uc *ListTodos) Execute(ctx context.Context, userID domain.UserID) ([]*domain.Todo, error) {
	return uc.todos.ListByUser(ctx, userID)
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain"
)

const listTodosByUserSQL = `SELECT id, user_id, title, completed, created_at, updated_at
	FROM todos WHERE user_id = $1 ORDER BY created_at`

// TodoRepository implements ports.TodoRepository on Postgres.
type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.Todo, error) {
	rows, err := r.pool.Query(ctx, listTodosByUserSQL, userID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.Todo
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID.UUID, &t.UserID.UUID, &t.Title, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

var _ ports.TodoRepository = (*TodoRepository)(nil)

package ports

import (
	"context"
	"time"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain"
)

// UserRepository defines persistence for users. Lookups return (nil, nil)
// when no row matches.
type UserRepository interface {
	// Create persists a new user. Returns domain errors.ErrEmailTaken when
	// the email is already registered (unique constraint).
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	// GetByResetTokenHash matches only when the stored reset token hash
	// equals tokenHash and the reset expiry is after now.
	GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	// Update persists mutations to an existing user (verification flag,
	// verification token, password hash, reset fields).
	Update(ctx context.Context, user *domain.User) error
}

// TodoRepository defines read access to a user's todos.
type TodoRepository interface {
	ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.Todo, error)
}

package auth

import (
	"context"
	"time"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
	domerrors "github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain/errors"
)

// ResetPasswordInput is the token from the reset link and the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPasswordResult is empty on success.
type ResetPasswordResult struct{}

// ResetPassword looks up the unexpired reset token, replaces the
// password hash, and clears both reset fields so the token cannot be
// replayed. A failed attempt leaves the fields untouched; they age out
// at the stored expiry.
type ResetPassword struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

// NewResetPassword builds the use case.
func NewResetPassword(users ports.UserRepository, hasher ports.PasswordHasher) *ResetPassword {
	return &ResetPassword{users: users, hasher: hasher}
}

// Execute validates the token and rotates the user's password.
func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordResult, error) {
	if input.Token == "" || input.NewPassword == "" {
		return nil, domerrors.ErrValidation
	}
	user, err := uc.users.GetByResetTokenHash(ctx, sha256Hash(input.Token), time.Now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrResetTokenInvalid
	}
	newHash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = newHash
	user.ResetTokenHash = nil
	user.ResetExpiresAt = nil
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &ResetPasswordResult{}, nil
}

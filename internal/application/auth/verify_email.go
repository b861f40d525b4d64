package auth

import (
	"context"
	"fmt"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
	domerrors "github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain/errors"
)

// VerifyEmailInput is the token from the verification link.
type VerifyEmailInput struct {
	Token string
}

// VerifyEmailResult is empty on success.
type VerifyEmailResult struct{}

// VerifyEmail decodes the signed token, finds the user by its email
// claim, flips the verified flag exactly once, and clears the stored
// verification token.
type VerifyEmail struct {
	users  ports.UserRepository
	issuer ports.TokenIssuer
}

// NewVerifyEmail builds the use case.
func NewVerifyEmail(users ports.UserRepository, issuer ports.TokenIssuer) *VerifyEmail {
	return &VerifyEmail{users: users, issuer: issuer}
}

// Execute validates the token and marks the user's email as verified.
func (uc *VerifyEmail) Execute(ctx context.Context, input VerifyEmailInput) (*VerifyEmailResult, error) {
	email, err := uc.issuer.ValidateVerificationToken(input.Token)
	if err != nil {
		// Malformed, wrong purpose, and expired all look the same to the
		// caller; the raw error stays available for logging via %w.
		return nil, wrapSentinel(domerrors.ErrVerificationInvalid, err)
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrVerificationInvalid
	}
	if user.IsVerified {
		return nil, domerrors.ErrAlreadyVerified
	}
	user.IsVerified = true
	user.VerificationToken = nil
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &VerifyEmailResult{}, nil
}

// wrapSentinel keeps a sentinel matchable via errors.Is while retaining
// the underlying cause for logs.
func wrapSentinel(sentinel, cause error) error {
	return fmt.Errorf("%w: %v", sentinel, cause)
}

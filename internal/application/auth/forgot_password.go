package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
	domerrors "github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain/errors"
)

const resetTokenBytes = 20

// ForgotPasswordInput for requesting a password reset email.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordResult is empty; the email is delivered best-effort.
type ForgotPasswordResult struct{}

// ForgotPassword stores a random opaque reset token (as a SHA-256
// digest) with an absolute expiry on the user row and hands the reset
// link off for delivery. The token is independent of the signed-token
// service: possession of the raw random string is the only credential.
type ForgotPassword struct {
	users      ports.UserRepository
	enqueuer   ports.MailEnqueuer
	baseURL    string
	expirySecs int64
}

// NewForgotPassword builds the use case.
func NewForgotPassword(users ports.UserRepository, enqueuer ports.MailEnqueuer, baseURL string, expirySecs int64) *ForgotPassword {
	if expirySecs <= 0 {
		expirySecs = 3600
	}
	return &ForgotPassword{
		users:      users,
		enqueuer:   enqueuer,
		baseURL:    baseURL,
		expirySecs: expirySecs,
	}
}

// Execute creates the reset token and hands off the email.
func (uc *ForgotPassword) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordResult, error) {
	if input.Email == "" {
		return nil, domerrors.ErrValidation
	}
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	token := hex.EncodeToString(raw)
	hash := sha256Hash(token)
	expiresAt := time.Now().Add(time.Duration(uc.expirySecs) * time.Second)
	user.ResetTokenHash = &hash
	user.ResetExpiresAt = &expiresAt
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	resetLink := fmt.Sprintf("%s/reset-password/%s", uc.baseURL, token)
	_ = uc.enqueuer.EnqueuePasswordResetEmail(ctx, user.Email, user.Name, resetLink)
	return &ForgotPasswordResult{}, nil
}

// sha256Hash returns the hex digest stored in place of the raw token.
func sha256Hash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

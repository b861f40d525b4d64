package auth

import (
	"context"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain"
	domerrors "github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	SessionToken string
	User         *domain.User
}

// Login checks credentials in a fixed order: user exists, password
// matches, email verified. Each check short-circuits with its own
// sentinel so the handler can keep the distinguished messages.
type Login struct {
	users         ports.UserRepository
	hasher        ports.PasswordHasher
	issuer        ports.TokenIssuer
	sessionExpiry int64
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, sessionExpiry int64) *Login {
	if sessionExpiry <= 0 {
		sessionExpiry = DefaultSessionExpiry
	}
	return &Login{
		users:         users,
		hasher:        hasher,
		issuer:        issuer,
		sessionExpiry: sessionExpiry,
	}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domerrors.ErrValidation
	}
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	if !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, domerrors.ErrEmailNotVerified
	}
	token, err := uc.issuer.IssueSessionToken(ports.SessionClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Name:   user.Name,
	}, uc.sessionExpiry)
	if err != nil {
		return nil, err
	}
	return &LoginResult{SessionToken: token, User: user}, nil
}

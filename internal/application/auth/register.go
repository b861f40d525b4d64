package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain"
	domerrors "github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	DefaultSessionExpiry      = 7 * 24 * 3600 // 7 days
	DefaultVerificationExpiry = 3600          // 1 hour
)

type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterUserResult struct {
	User         *domain.User
	SessionToken string
}

// RegisterUser creates an unverified account, mails a verification link,
// and issues a session token for the new user. The verification email is
// handed off before the row is written, so delivery is at-least-once
// while persistence stays at-most-once.
type RegisterUser struct {
	users         ports.UserRepository
	hasher        ports.PasswordHasher
	issuer        ports.TokenIssuer
	enqueuer      ports.MailEnqueuer
	baseURL       string
	verifyExpiry  int64
	sessionExpiry int64
}

func NewRegisterUser(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, enqueuer ports.MailEnqueuer, baseURL string, verifyExpiry, sessionExpiry int64) *RegisterUser {
	if verifyExpiry <= 0 {
		verifyExpiry = DefaultVerificationExpiry
	}
	if sessionExpiry <= 0 {
		sessionExpiry = DefaultSessionExpiry
	}
	return &RegisterUser{
		users:         users,
		hasher:        hasher,
		issuer:        issuer,
		enqueuer:      enqueuer,
		baseURL:       baseURL,
		verifyExpiry:  verifyExpiry,
		sessionExpiry: sessionExpiry,
	}
}

func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Email == "" || input.Password == "" {
		return nil, domerrors.ErrValidation
	}
	if !emailRegex.MatchString(input.Email) {
		return nil, domerrors.ErrValidation
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	verificationToken, err := uc.issuer.IssueVerificationToken(input.Email, uc.verifyExpiry)
	if err != nil {
		return nil, err
	}
	verifyLink := fmt.Sprintf("%s/verify/%s", uc.baseURL, verificationToken)
	_ = uc.enqueuer.EnqueueVerificationEmail(ctx, input.Email, name, verifyLink)

	now := time.Now()
	user := &domain.User{
		ID:                domain.NewUserID(uuid.New()),
		Name:              name,
		Email:             input.Email,
		PasswordHash:      hash,
		IsVerified:        false,
		VerificationToken: &verificationToken,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	sessionToken, err := uc.issuer.IssueSessionToken(ports.SessionClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Name:   user.Name,
	}, uc.sessionExpiry)
	if err != nil {
		return nil, err
	}
	return &RegisterUserResult{User: user, SessionToken: sessionToken}, nil
}

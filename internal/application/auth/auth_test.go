package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain"
	domerrors "github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain/errors"
	infraauth "github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/auth"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/security"
)

// fakeUserRepo is an in-memory UserRepository with the same contract as
// the postgres one: lookups return (nil, nil) on a miss and Create maps
// a duplicate email to ErrEmailTaken.
type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domerrors.ErrEmailTaken
	}
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID domain.UserID) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == userID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByResetTokenHash(_ context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ResetTokenHash != nil && *user.ResetTokenHash == tokenHash &&
			user.ResetExpiresAt != nil && user.ResetExpiresAt.After(now) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

// fakeEnqueuer records handed-off mail so tests can pull the links a
// real recipient would click.
type fakeEnqueuer struct {
	verifyLinks []string
	resetLinks  []string
}

func (e *fakeEnqueuer) EnqueueVerificationEmail(_ context.Context, _, _, link string) error {
	e.verifyLinks = append(e.verifyLinks, link)
	return nil
}

func (e *fakeEnqueuer) EnqueuePasswordResetEmail(_ context.Context, _, _, link string) error {
	e.resetLinks = append(e.resetLinks, link)
	return nil
}

const testBaseURL = "http://localhost:8080"

type testEnv struct {
	repo     *fakeUserRepo
	enqueuer *fakeEnqueuer
	issuer   ports.TokenIssuer

	register       *RegisterUser
	login          *Login
	verifyEmail    *VerifyEmail
	forgotPassword *ForgotPassword
	resetPassword  *ResetPassword
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := newFakeUserRepo()
	enqueuer := &fakeEnqueuer{}
	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	issuer := infraauth.NewTokenIssuer([]byte("test-secret"), "auth-backend-test")
	return &testEnv{
		repo:           repo,
		enqueuer:       enqueuer,
		issuer:         issuer,
		register:       NewRegisterUser(repo, hasher, issuer, enqueuer, testBaseURL, 3600, DefaultSessionExpiry),
		login:          NewLogin(repo, hasher, issuer, DefaultSessionExpiry),
		verifyEmail:    NewVerifyEmail(repo, issuer),
		forgotPassword: NewForgotPassword(repo, enqueuer, testBaseURL, 3600),
		resetPassword:  NewResetPassword(repo, hasher),
	}
}

func (env *testEnv) lastVerifyToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, env.enqueuer.verifyLinks)
	link := env.enqueuer.verifyLinks[len(env.enqueuer.verifyLinks)-1]
	return strings.TrimPrefix(link, testBaseURL+"/verify/")
}

func (env *testEnv) lastResetToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, env.enqueuer.resetLinks)
	link := env.enqueuer.resetLinks[len(env.enqueuer.resetLinks)-1]
	return strings.TrimPrefix(link, testBaseURL+"/reset-password/")
}

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.register.Execute(ctx, RegisterUserInput{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "Secr3t!",
	})
	require.NoError(t, err)
	require.False(t, result.User.IsVerified)
	require.NotNil(t, result.User.VerificationToken)
	require.NotEqual(t, "Secr3t!", result.User.PasswordHash)

	claims, err := env.issuer.ValidateSessionToken(result.SessionToken)
	require.NoError(t, err)
	require.Equal(t, result.User.ID.String(), claims.UserID)

	// Verification email carries the link for this token.
	require.Len(t, env.enqueuer.verifyLinks, 1)
	require.Contains(t, env.enqueuer.verifyLinks[0], testBaseURL+"/verify/")

	stored, err := env.repo.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.False(t, stored.IsVerified)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []RegisterUserInput{
		{Name: "", Email: "ann@x.com", Password: "pw"},
		{Name: "Ann", Email: "", Password: "pw"},
		{Name: "Ann", Email: "ann@x.com", Password: ""},
		{Name: "Ann", Email: "not-an-email", Password: "pw"},
		{Name: "   ", Email: "ann@x.com", Password: "pw"},
	}
	for _, input := range cases {
		_, err := env.register.Execute(ctx, input)
		require.ErrorIs(t, err, domerrors.ErrValidation, "input=%+v", input)
	}
	require.Empty(t, env.repo.byEmail)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.register.Execute(ctx, RegisterUserInput{Name: "Ann", Email: "ann@x.com", Password: "one"})
	require.NoError(t, err)
	_, err = env.register.Execute(ctx, RegisterUserInput{Name: "Other", Email: "ann@x.com", Password: "two"})
	require.ErrorIs(t, err, domerrors.ErrEmailTaken)

	// First registration is untouched.
	require.Len(t, env.repo.byEmail, 1)
	stored, err := env.repo.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	require.Equal(t, "Ann", stored.Name)
}

func TestLoginGatedOnVerification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.register.Execute(ctx, RegisterUserInput{Name: "Ann", Email: "ann@x.com", Password: "Secr3t!"})
	require.NoError(t, err)

	_, err = env.login.Execute(ctx, LoginInput{Email: "ann@x.com", Password: "Secr3t!"})
	require.ErrorIs(t, err, domerrors.ErrEmailNotVerified)

	_, err = env.verifyEmail.Execute(ctx, VerifyEmailInput{Token: env.lastVerifyToken(t)})
	require.NoError(t, err)

	result, err := env.login.Execute(ctx, LoginInput{Email: "ann@x.com", Password: "Secr3t!"})
	require.NoError(t, err)
	claims, err := env.issuer.ValidateSessionToken(result.SessionToken)
	require.NoError(t, err)
	require.Equal(t, "ann@x.com", claims.Email)
}

func TestLoginFailureOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.login.Execute(ctx, LoginInput{Email: "", Password: "pw"})
	require.ErrorIs(t, err, domerrors.ErrValidation)

	_, err = env.login.Execute(ctx, LoginInput{Email: "nobody@x.com", Password: "pw"})
	require.ErrorIs(t, err, domerrors.ErrUserNotFound)

	_, err = env.register.Execute(ctx, RegisterUserInput{Name: "Ann", Email: "ann@x.com", Password: "Secr3t!"})
	require.NoError(t, err)

	// Wrong password wins over the unverified state.
	_, err = env.login.Execute(ctx, LoginInput{Email: "ann@x.com", Password: "wrong"})
	require.ErrorIs(t, err, domerrors.ErrInvalidCredentials)
}

func TestVerifyEmailExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.register.Execute(ctx, RegisterUserInput{Name: "Ann", Email: "ann@x.com", Password: "Secr3t!"})
	require.NoError(t, err)
	token := env.lastVerifyToken(t)

	_, err = env.verifyEmail.Execute(ctx, VerifyEmailInput{Token: token})
	require.NoError(t, err)

	stored, err := env.repo.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	require.True(t, stored.IsVerified)
	require.Nil(t, stored.VerificationToken)

	// Replaying the link reports the account as already verified.
	_, err = env.verifyEmail.Execute(ctx, VerifyEmailInput{Token: token})
	require.ErrorIs(t, err, domerrors.ErrAlreadyVerified)
}

func TestVerifyEmailRejectsBadTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.verifyEmail.Execute(ctx, VerifyEmailInput{Token: "garbage"})
	require.ErrorIs(t, err, domerrors.ErrVerificationInvalid)

	// A well-formed token for an email that was never registered.
	orphan, err := env.issuer.IssueVerificationToken("ghost@x.com", 3600)
	require.NoError(t, err)
	_, err = env.verifyEmail.Execute(ctx, VerifyEmailInput{Token: orphan})
	require.ErrorIs(t, err, domerrors.ErrVerificationInvalid)

	// A session token must not verify an account.
	_, err = env.register.Execute(ctx, RegisterUserInput{Name: "Ann", Email: "ann@x.com", Password: "pw"})
	require.NoError(t, err)
	session, err := env.issuer.IssueSessionToken(ports.SessionClaims{UserID: "1", Email: "ann@x.com"}, 3600)
	require.NoError(t, err)
	_, err = env.verifyEmail.Execute(ctx, VerifyEmailInput{Token: session})
	require.ErrorIs(t, err, domerrors.ErrVerificationInvalid)
}

func TestForgotPasswordStoresHashedToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.forgotPassword.Execute(ctx, ForgotPasswordInput{Email: "nobody@x.com"})
	require.ErrorIs(t, err, domerrors.ErrUserNotFound)

	_, err = env.register.Execute(ctx, RegisterUserInput{Name: "Ann", Email: "ann@x.com", Password: "Secr3t!"})
	require.NoError(t, err)

	before := time.Now()
	_, err = env.forgotPassword.Execute(ctx, ForgotPasswordInput{Email: "ann@x.com"})
	require.NoError(t, err)

	raw := env.lastResetToken(t)
	require.Len(t, raw, 2*resetTokenBytes)

	stored, err := env.repo.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored.ResetTokenHash)
	require.NotNil(t, stored.ResetExpiresAt)
	// Only the digest is stored, never the raw token.
	require.NotEqual(t, raw, *stored.ResetTokenHash)
	require.Equal(t, sha256Hash(raw), *stored.ResetTokenHash)
	require.WithinDuration(t, before.Add(time.Hour), *stored.ResetExpiresAt, 5*time.Second)
}

func TestResetPasswordRotatesAndConsumesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.register.Execute(ctx, RegisterUserInput{Name: "Ann", Email: "ann@x.com", Password: "old-pass"})
	require.NoError(t, err)
	_, err = env.verifyEmail.Execute(ctx, VerifyEmailInput{Token: env.lastVerifyToken(t)})
	require.NoError(t, err)
	_, err = env.forgotPassword.Execute(ctx, ForgotPasswordInput{Email: "ann@x.com"})
	require.NoError(t, err)
	raw := env.lastResetToken(t)

	_, err = env.resetPassword.Execute(ctx, ResetPasswordInput{Token: raw, NewPassword: "new-pass"})
	require.NoError(t, err)

	_, err = env.login.Execute(ctx, LoginInput{Email: "ann@x.com", Password: "old-pass"})
	require.ErrorIs(t, err, domerrors.ErrInvalidCredentials)
	_, err = env.login.Execute(ctx, LoginInput{Email: "ann@x.com", Password: "new-pass"})
	require.NoError(t, err)

	stored, err := env.repo.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	require.Nil(t, stored.ResetTokenHash)
	require.Nil(t, stored.ResetExpiresAt)

	// The token is single-use.
	_, err = env.resetPassword.Execute(ctx, ResetPasswordInput{Token: raw, NewPassword: "another"})
	require.ErrorIs(t, err, domerrors.ErrResetTokenInvalid)
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.register.Execute(ctx, RegisterUserInput{Name: "Ann", Email: "ann@x.com", Password: "old-pass"})
	require.NoError(t, err)
	_, err = env.forgotPassword.Execute(ctx, ForgotPasswordInput{Email: "ann@x.com"})
	require.NoError(t, err)
	raw := env.lastResetToken(t)

	// Age the stored expiry past the cutoff.
	stored := env.repo.byEmail["ann@x.com"]
	expired := time.Now().Add(-time.Minute)
	stored.ResetExpiresAt = &expired

	_, err = env.resetPassword.Execute(ctx, ResetPasswordInput{Token: raw, NewPassword: "new-pass"})
	require.ErrorIs(t, err, domerrors.ErrResetTokenInvalid)
}

func TestResetPasswordRejectsEmptyInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.resetPassword.Execute(ctx, ResetPasswordInput{Token: "", NewPassword: "pw"})
	require.ErrorIs(t, err, domerrors.ErrValidation)
	_, err = env.resetPassword.Execute(ctx, ResetPasswordInput{Token: "tok", NewPassword: ""})
	require.ErrorIs(t, err, domerrors.ErrValidation)
	_, err = env.resetPassword.Execute(ctx, ResetPasswordInput{Token: "unknown", NewPassword: "pw"})
	require.ErrorIs(t, err, domerrors.ErrResetTokenInvalid)
}

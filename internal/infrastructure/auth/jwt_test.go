package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer([]byte("test-secret"), "auth-backend-test")
}

func TestSessionTokenRoundTrip(t *testing.T) {
	issuer := newTestIssuer()

	token, err := issuer.IssueSessionToken(ports.SessionClaims{
		UserID: "42",
		Email:  "ann@x.com",
		Name:   "Ann",
	}, 3600)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.ValidateSessionToken(token)
	require.NoError(t, err)
	require.Equal(t, "42", claims.UserID)
	require.Equal(t, "ann@x.com", claims.Email)
	require.Equal(t, "Ann", claims.Name)
}

func TestVerificationTokenRoundTrip(t *testing.T) {
	issuer := newTestIssuer()

	token, err := issuer.IssueVerificationToken("ann@x.com", 3600)
	require.NoError(t, err)

	email, err := issuer.ValidateVerificationToken(token)
	require.NoError(t, err)
	require.Equal(t, "ann@x.com", email)
}

func TestPurposeCrossUseRejected(t *testing.T) {
	issuer := newTestIssuer()

	verification, err := issuer.IssueVerificationToken("ann@x.com", 3600)
	require.NoError(t, err)
	_, err = issuer.ValidateSessionToken(verification)
	require.ErrorIs(t, err, ErrTokenInvalid)

	session, err := issuer.IssueSessionToken(ports.SessionClaims{UserID: "42", Email: "ann@x.com"}, 3600)
	require.NoError(t, err)
	_, err = issuer.ValidateVerificationToken(session)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := newTestIssuer()

	token, err := issuer.IssueSessionToken(ports.SessionClaims{UserID: "42"}, -60)
	require.NoError(t, err)
	_, err = issuer.ValidateSessionToken(token)
	require.ErrorIs(t, err, ErrTokenExpired)

	verification, err := issuer.IssueVerificationToken("ann@x.com", -60)
	require.NoError(t, err)
	_, err = issuer.ValidateVerificationToken(verification)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestForeignSignatureRejected(t *testing.T) {
	issuer := newTestIssuer()
	other := NewTokenIssuer([]byte("another-secret"), "auth-backend-test")

	token, err := other.IssueSessionToken(ports.SessionClaims{UserID: "42"}, 3600)
	require.NoError(t, err)
	_, err = issuer.ValidateSessionToken(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestMalformedTokenRejected(t *testing.T) {
	issuer := newTestIssuer()

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.ValidateSessionToken(tok)
		require.ErrorIs(t, err, ErrTokenInvalid, "token=%q", tok)
	}
}

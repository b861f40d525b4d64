package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
)

// Token purposes. Checked at validation so the two kinds can never be
// swapped even though they share one signing secret.
const (
	purposeSession = "session"
	purposeVerify  = "verify"
)

// Validation errors, distinguishable for logging. Handlers collapse
// both into a uniform "invalid" message toward clients.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenIssuer implements ports.TokenIssuer with HS256 and a single
// shared secret.
type TokenIssuer struct {
	secret []byte
	issuer string
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
}

func NewTokenIssuer(secret []byte, issuer string) *TokenIssuer {
	return &TokenIssuer{secret: secret, issuer: issuer}
}

func (t *TokenIssuer) IssueSessionToken(identity ports.SessionClaims, expiresInSeconds int64) (string, error) {
	return t.sign(tokenClaims{
		RegisteredClaims: t.registered(identity.UserID, expiresInSeconds),
		Purpose:          purposeSession,
		Email:            identity.Email,
		Name:             identity.Name,
	})
}

func (t *TokenIssuer) ValidateSessionToken(tokenString string) (*ports.SessionClaims, error) {
	claims, err := t.parse(tokenString, purposeSession)
	if err != nil {
		return nil, err
	}
	return &ports.SessionClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

func (t *TokenIssuer) IssueVerificationToken(email string, expiresInSeconds int64) (string, error) {
	return t.sign(tokenClaims{
		RegisteredClaims: t.registered("", expiresInSeconds),
		Purpose:          purposeVerify,
		Email:            email,
	})
}

func (t *TokenIssuer) ValidateVerificationToken(tokenString string) (string, error) {
	claims, err := t.parse(tokenString, purposeVerify)
	if err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", ErrTokenInvalid
	}
	return claims.Email, nil
}

func (t *TokenIssuer) registered(subject string, expiresInSeconds int64) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Issuer:    t.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiresInSeconds) * time.Second)),
	}
}

func (t *TokenIssuer) sign(claims tokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) parse(tokenString, wantPurpose string) (*tokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Purpose != wantPurpose {
		return nil, fmt.Errorf("%w: purpose %q", ErrTokenInvalid, claims.Purpose)
	}
	return claims, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)

package ports

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// SessionClaims is the identity carried by a session token.
type SessionClaims struct {
	UserID string
	Email  string
	Name   string
}

// TokenIssuer signs and validates JWTs (HS256, single shared secret).
// Both token kinds carry a purpose claim that is checked at validation,
// so a verification token can never pass as a session token.
type TokenIssuer interface {
	IssueSessionToken(claims SessionClaims, expiresInSeconds int64) (string, error)
	ValidateSessionToken(tokenString string) (*SessionClaims, error)
	IssueVerificationToken(email string, expiresInSeconds int64) (string, error)
	// ValidateVerificationToken returns the email claim of a valid,
	// unexpired verification token.
	ValidateVerificationToken(tokenString string) (string, error)
}

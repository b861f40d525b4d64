package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// ParseUserID parses the canonical string form.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID{UUID: id}, nil
}

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is an account record. The password is only ever stored hashed.
// VerificationToken is set at registration and cleared when the account
// is verified; the reset fields are set together by a forgot-password
// request and cleared together by a successful reset.
type User struct {
	ID                UserID
	Name              string
	Email             string
	PasswordHash      string
	IsVerified        bool
	VerificationToken *string
	ResetTokenHash    *string
	ResetExpiresAt    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

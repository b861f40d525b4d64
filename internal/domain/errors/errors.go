package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status. The error text is
// the user-facing message, so handlers can echo it for business errors.
var (
	ErrValidation          = errors.New("Please fill all fields")
	ErrEmailTaken          = errors.New("Email already in use")
	ErrUserNotFound        = errors.New("User not found")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrEmailNotVerified    = errors.New("Email not verified")
	ErrAlreadyVerified     = errors.New("Account is already verified.")
	ErrVerificationInvalid = errors.New("Invalid verification link.")
	ErrResetTokenInvalid   = errors.New("Invalid or expired token")
)

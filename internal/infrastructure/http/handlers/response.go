package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	domerrors "github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain/errors"
)

// writeErr sends JSON { "message": ... }.
func writeErr(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// genericErrMessage is returned for unexpected failures; internal error
// text is logged, never echoed to clients.
const genericErrMessage = "Something went wrong"

// errStatusTable maps the domain sentinels to HTTP statuses. Business
// failures answer with the sentinel's own message; everything else is a
// generic 500.
var errStatusTable = []struct {
	target error
	status int
}{
	{domerrors.ErrValidation, http.StatusBadRequest},
	{domerrors.ErrEmailTaken, http.StatusConflict},
	{domerrors.ErrUserNotFound, http.StatusBadRequest},
	{domerrors.ErrInvalidCredentials, http.StatusBadRequest},
	{domerrors.ErrEmailNotVerified, http.StatusBadRequest},
	{domerrors.ErrAlreadyVerified, http.StatusBadRequest},
	{domerrors.ErrVerificationInvalid, http.StatusBadRequest},
	{domerrors.ErrResetTokenInvalid, http.StatusBadRequest},
}

func statusFor(err error) (int, string) {
	for _, entry := range errStatusTable {
		if errors.Is(err, entry.target) {
			return entry.status, entry.target.Error()
		}
	}
	return http.StatusInternalServerError, genericErrMessage
}

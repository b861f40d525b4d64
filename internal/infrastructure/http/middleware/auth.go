package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "token"

// AuthValidator validates the session cookie and sets the user identity
// in the request context (see IdentityFromContext).
type AuthValidator struct {
	issuer ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthValidator(issuer ports.TokenIssuer, log zerolog.Logger) *AuthValidator {
	return &AuthValidator{issuer: issuer, log: log}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			unauthorized(w)
			return
		}
		claims, err := m.issuer.ValidateSessionToken(cookie.Value)
		if err != nil {
			// Expired and malformed are logged apart but answered alike.
			m.log.Debug().Err(err).Msg("session token rejected")
			unauthorized(w)
			return
		}
		ctx := WithIdentity(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
}

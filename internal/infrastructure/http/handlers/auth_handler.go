package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/auth"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register       *auth.RegisterUser
	login          *auth.Login
	verifyEmail    *auth.VerifyEmail
	forgotPassword *auth.ForgotPassword
	resetPassword  *auth.ResetPassword
	sessionMaxAge  int // seconds, for the cookie
	secureCookies  bool
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewAuthHandler(register *auth.RegisterUser, login *auth.Login, verifyEmail *auth.VerifyEmail, forgotPassword *auth.ForgotPassword, resetPassword *auth.ResetPassword, sessionMaxAge int64, secureCookies bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register:       register,
		login:          login,
		verifyEmail:    verifyEmail,
		forgotPassword: forgotPassword,
		resetPassword:  resetPassword,
		sessionMaxAge:  int(sessionMaxAge),
		secureCookies:  secureCookies,
		validate:       validator.New(),
		log:            log,
	}
}

// userResponse is the JSON shape for a user record. The password hash is
// deliberately not part of it.
type userResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Please fill all fields")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Please fill all fields")
		return
	}
	name := SanitizeName(body.Name)
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if name == "" || email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "Please fill all fields")
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		middleware.RecordAuthAttempt("register", false)
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("register failed")
		}
		writeErr(w, status, msg)
		return
	}
	middleware.RecordAuthAttempt("register", true)
	h.setSessionCookie(w, result.SessionToken, h.sessionMaxAge)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    toUserResponse(result.User),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Please fill all fields")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Please fill all fields")
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    SanitizeEmail(body.Email),
		Password: SanitizePassword(body.Password),
	})
	if err != nil {
		middleware.RecordAuthAttempt("login", false)
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("login failed")
		}
		writeErr(w, status, msg)
		return
	}
	middleware.RecordAuthAttempt("login", true)
	h.setSessionCookie(w, result.SessionToken, h.sessionMaxAge)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User logged in successfully"})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User logged out successfully"})
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeErr(w, http.StatusBadRequest, "Invalid verification link.")
		return
	}
	_, err := h.verifyEmail.Execute(r.Context(), auth.VerifyEmailInput{Token: token})
	if err != nil {
		middleware.RecordAuthAttempt("verify", false)
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("verify failed")
		} else {
			h.log.Debug().Err(err).Msg("verify rejected")
		}
		writeErr(w, status, msg)
		return
	}
	middleware.RecordAuthAttempt("verify", true)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account verified!"})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,max=254"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Please fill all fields")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Please fill all fields")
		return
	}
	_, err := h.forgotPassword.Execute(r.Context(), auth.ForgotPasswordInput{
		Email: SanitizeEmail(body.Email),
	})
	if err != nil {
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("forgot password failed")
		}
		writeErr(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Email sent"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	var body struct {
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Please fill all fields")
		return
	}
	if token == "" || h.validate.Struct(&body) != nil {
		writeErr(w, http.StatusBadRequest, "Please fill all fields")
		return
	}
	_, err := h.resetPassword.Execute(r.Context(), auth.ResetPasswordInput{
		Token:       token,
		NewPassword: SanitizePassword(body.Password),
	})
	if err != nil {
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("reset password failed")
		}
		writeErr(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successful"})
}

// setSessionCookie writes the session cookie. SameSite=None because the
// frontend is served from another origin; Secure only in production so
// local development over plain HTTP still works.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteNoneMode,
	})
}

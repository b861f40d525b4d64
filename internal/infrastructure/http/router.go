package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/http/handlers"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler   *handlers.AuthHandler
	TodosHandler  *handlers.TodosHandler
	HealthHandler *handlers.HealthHandler
	RequireAuth   func(http.Handler) http.Handler // session cookie for /todos
	Log           zerolog.Logger
	Secure        func(http.Handler) http.Handler
	CORS          func(http.Handler) http.Handler
	Metrics       bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Post("/register", cfg.AuthHandler.Register)
	r.Post("/login", cfg.AuthHandler.Login)
	r.Post("/logout", cfg.AuthHandler.Logout)
	r.Get("/verify/{token}", cfg.AuthHandler.Verify)
	r.Post("/forgot-password", cfg.AuthHandler.ForgotPassword)
	r.Post("/reset-password/{token}", cfg.AuthHandler.ResetPassword)

	if cfg.TodosHandler != nil && cfg.RequireAuth != nil {
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireAuth)
			r.Get("/todos", cfg.TodosHandler.List)
		})
	}

	return r
}

// loggerMiddleware logs each request after routing, by its matched
// route pattern: raw paths carry verification and reset tokens, which
// must stay out of the logs.
func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			log.Info().
				Str("request_id", chimid.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", middleware.RoutePattern(r)).
				Msg("request")
		})
	}
}

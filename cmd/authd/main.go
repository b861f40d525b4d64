package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/auth"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/todos"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/config"
	infraauth "github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/auth"
	httprouter "github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/http"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/http/handlers"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/http/middleware"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/mail"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/persistence/postgres"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/queue"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	var mailer ports.Mailer
	if cfg.Mail.Driver == "log" {
		mailer = mail.NewLogMailer(log)
	} else {
		mailer = mail.NewHTTPMailer(cfg.Mail.APIURL, cfg.Mail.APIKey, cfg.Mail.From,
			mail.WithTemplate(ports.MailKindVerify, cfg.Mail.VerifyTemplateID),
			mail.WithTemplate(ports.MailKindReset, cfg.Mail.ResetTemplateID),
		)
	}

	var enqueuer ports.MailEnqueuer
	var mailWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq := queue.NewAsynqEnqueuer(asynqOpt, log)
		defer asynqEnq.Close()
		enqueuer = asynqEnq
		mailWorker = queue.NewWorker(asynqOpt, mailer, log)
		go func() {
			if err := mailWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("mail worker stopped")
			}
		}()
	} else {
		enqueuer = queue.NewInlineEnqueuer(mailer, log)
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer)

	userRepo := postgres.NewUserRepository(pool)
	todoRepo := postgres.NewTodoRepository(pool)

	registerUC := auth.NewRegisterUser(userRepo, hasher, issuer, enqueuer, cfg.App.BaseURL, cfg.JWT.VerificationExpiry, cfg.JWT.SessionExpiry)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, cfg.JWT.SessionExpiry)
	verifyEmailUC := auth.NewVerifyEmail(userRepo, issuer)
	forgotPasswordUC := auth.NewForgotPassword(userRepo, enqueuer, cfg.App.BaseURL, 3600)
	resetPasswordUC := auth.NewResetPassword(userRepo, hasher)
	listTodosUC := todos.NewListTodos(todoRepo)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, verifyEmailUC, forgotPasswordUC, resetPasswordUC, cfg.JWT.SessionExpiry, cfg.IsProduction(), log)
	todosHandler := handlers.NewTodosHandler(listTodosUC)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)
	requireAuth := middleware.NewAuthValidator(issuer, log).Handler
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(!cfg.IsProduction()))
	corsMiddleware := middleware.CORS(cfg.App.CORSOrigins, nil, nil)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   authHandler,
		TodosHandler:  todosHandler,
		HealthHandler: healthHandler,
		RequireAuth:   requireAuth,
		Log:           log,
		Secure:        secureMiddleware,
		CORS:          corsMiddleware,
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if mailWorker != nil {
		mailWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}

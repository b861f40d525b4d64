package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
)

// Worker drains the mail queue and delivers through the Mailer.
// Returning an error from a handler makes asynq retry the task, which
// is what decouples delivery reliability from request latency.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	mailer ports.Mailer
	log    zerolog.Logger
}

// NewWorker creates an Asynq server and registers the mail handlers.
// Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, mailer ports.Mailer, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, mailer: mailer, log: log}
	mux.HandleFunc(TypeSendEmailVerification, w.handleMail(ports.MailKindVerify))
	mux.HandleFunc(TypeSendPasswordReset, w.handleMail(ports.MailKindReset))
	return w
}

func (w *Worker) handleMail(kind ports.MailKind) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p mailTaskPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			w.log.Error().Err(err).Str("task", t.Type()).Msg("mail task payload invalid")
			return err
		}
		if err := w.mailer.Send(ctx, ports.MailMessage{
			To:   p.Email,
			Name: p.Name,
			Link: p.Link,
			Kind: kind,
		}); err != nil {
			w.log.Warn().Err(err).Str("task", t.Type()).Str("email", p.Email).Msg("mail delivery failed; will retry")
			return err
		}
		return nil
	}
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
)

// InlineEnqueuer delivers mail synchronously when Redis/Asynq is not
// configured. Failures are logged and swallowed so a slow or broken
// mail provider never fails the request.
type InlineEnqueuer struct {
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewInlineEnqueuer(mailer ports.Mailer, log zerolog.Logger) *InlineEnqueuer {
	return &InlineEnqueuer{mailer: mailer, log: log}
}

func (q *InlineEnqueuer) EnqueueVerificationEmail(ctx context.Context, email, name, link string) error {
	q.send(ctx, ports.MailMessage{To: email, Name: name, Link: link, Kind: ports.MailKindVerify})
	return nil
}

func (q *InlineEnqueuer) EnqueuePasswordResetEmail(ctx context.Context, email, name, link string) error {
	q.send(ctx, ports.MailMessage{To: email, Name: name, Link: link, Kind: ports.MailKindReset})
	return nil
}

func (q *InlineEnqueuer) send(ctx context.Context, msg ports.MailMessage) {
	if err := q.mailer.Send(ctx, msg); err != nil {
		q.log.Warn().Err(err).Str("to", msg.To).Str("kind", string(msg.Kind)).Msg("mail delivery failed")
	}
}

var _ ports.MailEnqueuer = (*InlineEnqueuer)(nil)

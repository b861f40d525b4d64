package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
)

// LogMailer logs the message instead of delivering it. Used in
// development when no mail provider is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	m.log.Info().
		Str("to", msg.To).
		Str("name", msg.Name).
		Str("link", msg.Link).
		Str("kind", string(msg.Kind)).
		Msg("mail (log only; set MAIL_DRIVER=api for real delivery)")
	return nil
}

var _ ports.Mailer = (*LogMailer)(nil)

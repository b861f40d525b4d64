package ports

import "context"

// MailKind selects the template for an outbound message.
type MailKind string

const (
	MailKindVerify MailKind = "verify"
	MailKindReset  MailKind = "reset"
)

// MailMessage is a templated message with a single action link.
type MailMessage struct {
	To   string
	Name string
	Link string
	Kind MailKind
}

// Mailer delivers a templated message to an address.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

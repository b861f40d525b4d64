package ports

import "context"

// MailEnqueuer hands mail off for delivery. Implementations may queue
// for a worker or deliver in-line; either way delivery failures are
// best-effort and never abort the calling workflow.
type MailEnqueuer interface {
	EnqueueVerificationEmail(ctx context.Context, email, name, link string) error
	EnqueuePasswordResetEmail(ctx context.Context, email, name, link string) error
}

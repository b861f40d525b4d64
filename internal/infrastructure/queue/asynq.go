package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
)

const (
	TypeSendEmailVerification = "email:verification"
	TypeSendPasswordReset     = "email:password_reset"
)

// mailTaskPayload is the JSON body for both mail task types.
type mailTaskPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Link  string `json:"link"`
}

// AsynqEnqueuer queues mail for the Worker so delivery (and retries)
// happen off the request path.
type AsynqEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *AsynqEnqueuer) Close() error {
	return q.client.Close()
}

func (q *AsynqEnqueuer) EnqueueVerificationEmail(ctx context.Context, email, name, link string) error {
	return q.enqueue(ctx, TypeSendEmailVerification, email, name, link)
}

func (q *AsynqEnqueuer) EnqueuePasswordResetEmail(ctx context.Context, email, name, link string) error {
	return q.enqueue(ctx, TypeSendPasswordReset, email, name, link)
}

func (q *AsynqEnqueuer) enqueue(ctx context.Context, taskType, email, name, link string) error {
	payload, _ := json.Marshal(mailTaskPayload{Email: email, Name: name, Link: link})
	_, err := q.client.EnqueueContext(ctx, asynq.NewTask(taskType, payload))
	if err != nil {
		q.log.Warn().Err(err).Str("task", taskType).Str("email", email).Msg("enqueue mail failed")
		return err
	}
	return nil
}

var _ ports.MailEnqueuer = (*AsynqEnqueuer)(nil)

// Package mail dispatches outbound email through an asynq task queue.
// When no queue is configured the enqueuer degrades to a logging no-op, so
// auth flows never depend on redis being up.
package mail

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

const (
	TypeSendPasswordReset = "email:password_reset"
	TypeSendInvitation    = "email:workspace_invitation"
)

// Enqueuer is what the services depend on; satisfied by TaskEnqueuer and
// NoopEnqueuer.
type Enqueuer interface {
	EnqueueSendPasswordReset(email string, token string) error
	EnqueueSendInvitation(email string, token string, workspaceName string) error
}

type passwordResetPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type invitationPayload struct {
	Email         string `json:"email"`
	Token         string `json:"token"`
	WorkspaceName string `json:"workspace_name"`
}

type TaskEnqueuer struct {
	client *asynq.Client
}

func NewTaskEnqueuer(redisAddr string) *TaskEnqueuer {
	return &TaskEnqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

func (enqueuer *TaskEnqueuer) EnqueueSendPasswordReset(email string, token string) error {
	payload, err := json.Marshal(passwordResetPayload{Email: email, Token: token})
	if err != nil {
		return fmt.Errorf("marshal reset payload: %w", err)
	}
	if _, err := enqueuer.client.Enqueue(asynq.NewTask(TypeSendPasswordReset, payload)); err != nil {
		return fmt.Errorf("enqueue reset mail: %w", err)
	}
	return nil
}

func (enqueuer *TaskEnqueuer) EnqueueSendInvitation(email string, token string, workspaceName string) error {
	payload, err := json.Marshal(invitationPayload{Email: email, Token: token, WorkspaceName: workspaceName})
	if err != nil {
		return fmt.Errorf("marshal invitation payload: %w", err)
	}
	if _, err := enqueuer.client.Enqueue(asynq.NewTask(TypeSendInvitation, payload)); err != nil {
		return fmt.Errorf("enqueue invitation mail: %w", err)
	}
	return nil
}

func (enqueuer *TaskEnqueuer) Close() error {
	return enqueuer.client.Close()
}

// NoopEnqueuer logs instead of delivering. Used when REDIS_ADDR is unset
// and in tests.
type NoopEnqueuer struct{}

func (NoopEnqueuer) EnqueueSendPasswordReset(email string, token string) error {
	log.Printf("mail disabled: password reset for %s not sent", email)
	return nil
}

func (NoopEnqueuer) EnqueueSendInvitation(email string, token string, workspaceName string) error {
	log.Printf("mail disabled: invitation to %q for %s not sent", workspaceName, email)
	return nil
}

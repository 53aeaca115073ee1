package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/smtp"
	"net/url"
	"strings"

	"github.com/hibiken/asynq"
)

// SMTPConfig holds delivery settings. When Host is empty the worker logs
// messages instead of sending, which keeps local development mail-free.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func (config SMTPConfig) configured() bool {
	return config.Host != ""
}

// Worker consumes queued email tasks and delivers them over SMTP. Links
// are built from the public application URL.
type Worker struct {
	server *asynq.Server
	appURL string
	smtp   SMTPConfig
}

func NewWorker(redisAddr string, appURL string, smtpConfig SMTPConfig) *Worker {
	return &Worker{
		server: asynq.NewServer(
			asynq.RedisClientOpt{Addr: redisAddr},
			asynq.Config{Concurrency: 4},
		),
		appURL: strings.TrimRight(appURL, "/"),
		smtp:   smtpConfig,
	}
}

// Start runs the worker until the context is cancelled.
func (worker *Worker) Start(ctx context.Context) error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSendPasswordReset, worker.handleSendPasswordReset)
	mux.HandleFunc(TypeSendInvitation, worker.handleSendInvitation)

	if err := worker.server.Start(mux); err != nil {
		return fmt.Errorf("start mail worker: %w", err)
	}
	go func() {
		<-ctx.Done()
		worker.server.Shutdown()
	}()
	return nil
}

func (worker *Worker) handleSendPasswordReset(ctx context.Context, task *asynq.Task) error {
	var payload passwordResetPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode reset payload: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", worker.appURL, url.QueryEscape(payload.Token))
	subject := "Reset your Cordial password"
	body := fmt.Sprintf(
		"A password reset was requested for your account.\r\n\r\n"+
			"Open the link below within 24 hours to choose a new password:\r\n%s\r\n\r\n"+
			"If you did not request this, you can ignore this message.\r\n",
		link,
	)
	return worker.deliver(payload.Email, subject, body)
}

func (worker *Worker) handleSendInvitation(ctx context.Context, task *asynq.Task) error {
	var payload invitationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode invitation payload: %w", err)
	}

	link := fmt.Sprintf("%s/invite?token=%s", worker.appURL, url.QueryEscape(payload.Token))
	subject := fmt.Sprintf("You have been invited to %s on Cordial", payload.WorkspaceName)
	body := fmt.Sprintf(
		"You have been invited to join the %q workspace.\r\n\r\n"+
			"Accept the invitation here:\r\n%s\r\n\r\n"+
			"The link expires in 7 days.\r\n",
		payload.WorkspaceName,
		link,
	)
	return worker.deliver(payload.Email, subject, body)
}

func (worker *Worker) deliver(to string, subject string, body string) error {
	if !worker.smtp.configured() {
		log.Printf("smtp not configured, would send %q to %s", subject, to)
		return nil
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		worker.smtp.From, to, subject, body,
	)

	address := worker.smtp.Host + ":" + worker.smtp.Port
	var auth smtp.Auth
	if worker.smtp.Username != "" {
		auth = smtp.PlainAuth("", worker.smtp.Username, worker.smtp.Password, worker.smtp.Host)
	}
	if err := smtp.SendMail(address, auth, worker.smtp.From, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

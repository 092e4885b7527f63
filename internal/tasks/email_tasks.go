package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"waste-tracking-backend/config"
	"waste-tracking-backend/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeEmailDelivery = "email:deliver"

// EmailDeliveryPayload is the JSON body of an email delivery task.
type EmailDeliveryPayload struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	TextBody string `json:"text_body"`
	HTMLBody string `json:"html_body"`
}

// NewEmailDeliveryTask builds an asynq task that sends one email.
func NewEmailDeliveryTask(to, subject, textBody, htmlBody string) (*asynq.Task, error) {
	payload, err := json.Marshal(EmailDeliveryPayload{
		To:       to,
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailDelivery, payload, asynq.MaxRetry(3)), nil
}

// HandleEmailDeliveryTask sends the email through the shared mailer.
func HandleEmailDeliveryTask(ctx context.Context, t *asynq.Task) error {
	var p EmailDeliveryPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal email payload: %w", err)
	}

	if err := utils.SendEmail(p.To, p.Subject, p.TextBody, p.HTMLBody); err != nil {
		return err
	}

	config.Logger.Info("Email task processed",
		zap.String("to", p.To),
		zap.String("subject", p.Subject),
	)
	return nil
}

// StartTaskServer runs the asynq worker in a background goroutine.
func StartTaskServer(redisOpt asynq.RedisClientOpt) *asynq.Server {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailDelivery, HandleEmailDeliveryTask)

	go func() {
		if err := srv.Run(mux); err != nil {
			config.Logger.Error("Task server stopped", zap.Error(err))
		}
	}()

	return srv
}

package notification

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EmailJobHandler consumes email jobs from the queue and delivers them
// over SMTP. Malformed payloads are dropped, delivery failures are
// returned so the message gets nacked.
type EmailJobHandler struct {
	mailer EmailSender
	logger *zerolog.Logger
}

func NewEmailJobHandler(mailer EmailSender, logger *zerolog.Logger) *EmailJobHandler {
	return &EmailJobHandler{
		mailer: mailer,
		logger: logger,
	}
}

func (h *EmailJobHandler) Handle(ctx context.Context, msg amqp091.Delivery) error {
	var job EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		h.logger.Error().Err(err).Msg("dropping malformed email job")
		return nil
	}

	if err := h.mailer.Send(ctx, job.To, job.Subject, job.Body); err != nil {
		h.logger.Error().Err(err).Str("to", job.To).Msg("email delivery failed")
		return err
	}

	h.logger.Info().Str("to", job.To).Str("subject", job.Subject).Msg("alert email sent")
	return nil
}

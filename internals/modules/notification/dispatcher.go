package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type EmailQueue interface {
	Publish(ctx context.Context, body []byte) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

type WebhookSender interface {
	SendSlack(ctx context.Context, webhookURL, text string) error
	SendWebhook(ctx context.Context, webhookURL string, payload any) error
}

type PreferencesStore interface {
	GetPreferences(ctx context.Context, userID uuid.UUID) (Preferences, error)
}

// Dispatcher fans a persisted alert out to the user's channels. Critical
// alerts always go to email through the queue. Channel failures are logged
// and never fail the check cycle that produced the alert.
type Dispatcher struct {
	prefs    PreferencesStore
	emails   EmailQueue
	sms      SMSSender
	webhooks WebhookSender
	logger   *zerolog.Logger
}

func NewDispatcher(prefs PreferencesStore, emails EmailQueue, sms SMSSender, webhooks WebhookSender, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		prefs:    prefs,
		emails:   emails,
		sms:      sms,
		webhooks: webhooks,
		logger:   logger,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, oa OutboundAlert) {
	prefs, err := d.prefs.GetPreferences(ctx, oa.UserID)
	if err != nil {
		d.logger.Error().Err(err).Str("user_id", oa.UserID.String()).Msg("failed to load notification preferences")
		prefs = Preferences{UserID: oa.UserID, Email: true}
	}

	if oa.Critical || prefs.Email {
		d.enqueueEmail(ctx, oa)
	}

	if prefs.SMS && prefs.PhoneNumber != "" && d.sms != nil {
		body := fmt.Sprintf("[%s] %s", oa.Kind, oa.Message)
		if err := d.sms.SendSMS(ctx, prefs.PhoneNumber, body); err != nil {
			d.logger.Error().Err(err).Str("monitor", oa.MonitorName).Msg("sms send failed")
		}
	}

	if prefs.Slack && prefs.SlackWebhook != "" {
		if err := d.webhooks.SendSlack(ctx, prefs.SlackWebhook, oa.Message); err != nil {
			d.logger.Error().Err(err).Str("monitor", oa.MonitorName).Msg("slack send failed")
		}
	}

	if prefs.Webhook && prefs.CustomWebhook != "" {
		payload := map[string]any{
			"monitorId":   oa.MonitorID.String(),
			"monitorName": oa.MonitorName,
			"type":        oa.Kind,
			"message":     oa.Message,
		}
		if err := d.webhooks.SendWebhook(ctx, prefs.CustomWebhook, payload); err != nil {
			d.logger.Error().Err(err).Str("monitor", oa.MonitorName).Msg("webhook send failed")
		}
	}
}

func (d *Dispatcher) enqueueEmail(ctx context.Context, oa OutboundAlert) {
	job := EmailJob{
		To:      oa.UserEmail,
		Subject: fmt.Sprintf("[%s] %s", oa.Kind, oa.MonitorName),
		Body:    oa.Message,
	}

	body, err := json.Marshal(job)
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to marshal email job")
		return
	}

	if err := d.emails.Publish(ctx, body); err != nil {
		d.logger.Error().Err(err).Str("monitor", oa.MonitorName).Msg("failed to enqueue alert email")
	}
}

package notification

import (
	"context"

	"pingdeck/config"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender sends SMS alerts through the Twilio REST API.
type TwilioSender struct {
	client     *twilio.RestClient
	fromNumber string
}

func NewTwilioSender(cfg *config.TwilioConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioSender{
		client:     client,
		fromNumber: cfg.FromNumber,
	}
}

func (t *TwilioSender) SendSMS(_ context.Context, to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(body)

	_, err := t.client.Api.CreateMessage(params)
	return err
}

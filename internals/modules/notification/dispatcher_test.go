package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fakeEmailQueue struct {
	published [][]byte
	err       error
}

func (f *fakeEmailQueue) Publish(ctx context.Context, body []byte) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, body)
	return nil
}

type fakeSMS struct {
	sent []string
}

func (f *fakeSMS) SendSMS(ctx context.Context, to, body string) error {
	f.sent = append(f.sent, to)
	return nil
}

type fakeWebhooks struct {
	slack    []string
	webhooks []string
}

func (f *fakeWebhooks) SendSlack(ctx context.Context, webhookURL, text string) error {
	f.slack = append(f.slack, webhookURL)
	return nil
}

func (f *fakeWebhooks) SendWebhook(ctx context.Context, webhookURL string, payload any) error {
	f.webhooks = append(f.webhooks, webhookURL)
	return nil
}

type fakePrefs struct {
	prefs Preferences
	err   error
}

func (f *fakePrefs) GetPreferences(ctx context.Context, userID uuid.UUID) (Preferences, error) {
	if f.err != nil {
		return Preferences{}, f.err
	}
	return f.prefs, nil
}

func newTestDispatcher(prefs *fakePrefs, emails *fakeEmailQueue, sms *fakeSMS, hooks *fakeWebhooks) *Dispatcher {
	logger := zerolog.Nop()
	return NewDispatcher(prefs, emails, sms, hooks, &logger)
}

func outbound(critical bool) OutboundAlert {
	return OutboundAlert{
		UserID:      uuid.New(),
		UserEmail:   "user@example.com",
		MonitorID:   uuid.New(),
		MonitorName: "api",
		Kind:        "DOWN",
		Message:     "Monitor api is down.",
		Critical:    critical,
	}
}

func TestCriticalAlertAlwaysEmails(t *testing.T) {
	emails := &fakeEmailQueue{}
	prefs := &fakePrefs{prefs: Preferences{Email: false}}
	d := newTestDispatcher(prefs, emails, &fakeSMS{}, &fakeWebhooks{})

	d.Dispatch(context.Background(), outbound(true))

	if len(emails.published) != 1 {
		t.Fatalf("emails published = %d, want 1 despite email pref off", len(emails.published))
	}

	var job EmailJob
	if err := json.Unmarshal(emails.published[0], &job); err != nil {
		t.Fatalf("bad email job payload: %v", err)
	}
	if job.To != "user@example.com" {
		t.Errorf("job.To = %q", job.To)
	}
	if job.Subject != "[DOWN] api" {
		t.Errorf("job.Subject = %q", job.Subject)
	}
}

func TestNonCriticalHonoursEmailPreference(t *testing.T) {
	emails := &fakeEmailQueue{}
	prefs := &fakePrefs{prefs: Preferences{Email: false}}
	d := newTestDispatcher(prefs, emails, &fakeSMS{}, &fakeWebhooks{})

	d.Dispatch(context.Background(), outbound(false))

	if len(emails.published) != 0 {
		t.Errorf("emails published = %d, want 0", len(emails.published))
	}
}

func TestChannelsFollowPreferences(t *testing.T) {
	emails := &fakeEmailQueue{}
	sms := &fakeSMS{}
	hooks := &fakeWebhooks{}
	prefs := &fakePrefs{prefs: Preferences{
		Email:         true,
		SMS:           true,
		Slack:         true,
		Webhook:       true,
		PhoneNumber:   "+15550100",
		SlackWebhook:  "https://hooks.slack.com/T/B/X",
		CustomWebhook: "https://ops.example.com/hook",
	}}
	d := newTestDispatcher(prefs, emails, sms, hooks)

	d.Dispatch(context.Background(), outbound(false))

	if len(emails.published) != 1 {
		t.Errorf("emails = %d, want 1", len(emails.published))
	}
	if len(sms.sent) != 1 || sms.sent[0] != "+15550100" {
		t.Errorf("sms = %v, want one to +15550100", sms.sent)
	}
	if len(hooks.slack) != 1 {
		t.Errorf("slack posts = %d, want 1", len(hooks.slack))
	}
	if len(hooks.webhooks) != 1 {
		t.Errorf("webhook posts = %d, want 1", len(hooks.webhooks))
	}
}

func TestSMSSkippedWithoutNumber(t *testing.T) {
	sms := &fakeSMS{}
	prefs := &fakePrefs{prefs: Preferences{Email: true, SMS: true}}
	d := newTestDispatcher(prefs, &fakeEmailQueue{}, sms, &fakeWebhooks{})

	d.Dispatch(context.Background(), outbound(false))

	if len(sms.sent) != 0 {
		t.Errorf("sms = %v, want none without a phone number", sms.sent)
	}
}

func TestPreferenceLoadFailureStillEmailsCritical(t *testing.T) {
	emails := &fakeEmailQueue{}
	prefs := &fakePrefs{err: errors.New("db down")}
	d := newTestDispatcher(prefs, emails, &fakeSMS{}, &fakeWebhooks{})

	d.Dispatch(context.Background(), outbound(true))

	if len(emails.published) != 1 {
		t.Errorf("emails = %d, want 1 even when prefs load fails", len(emails.published))
	}
}

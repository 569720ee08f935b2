package mailer

import (
	"context"

	"pingdeck/config"

	"github.com/wneessen/go-mail"
)

type Mailer struct {
	client *mail.Client
	from   string
}

func New(cfg *config.SMTPConfig) (*Mailer, error) {
	client, err := mail.NewClient(
		cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, err
	}

	return &Mailer{
		client: client,
		from:   cfg.From,
	}, nil
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return m.client.DialAndSendWithContext(ctx, msg)
}

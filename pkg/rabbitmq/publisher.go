package rabbitmq

import (
	"context"
	"errors"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	ch         *amqp091.Channel
	confirms   <-chan amqp091.Confirmation
	routingKey string
}

// NewPublisher opens a confirm-mode channel publishing to the default
// exchange with the queue name as routing key.
func NewPublisher(conn *amqp091.Connection, routingKey string) (*Publisher, error) {
	if conn == nil {
		return nil, errors.New("AMQP connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		ch.Close()
		return nil, err
	}

	confirms := ch.NotifyPublish(make(chan amqp091.Confirmation, 100))

	return &Publisher{
		ch:         ch,
		confirms:   confirms,
		routingKey: routingKey,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, body []byte) error {
	if p.ch == nil {
		return errors.New("AMQP channel is nil")
	}

	err := p.ch.PublishWithContext(
		ctx,
		"", // default exchange
		p.routingKey,
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	select {
	case confirm := <-p.confirms:
		if !confirm.Ack {
			return errors.New("broker rejected publish")
		}
		return nil
	case <-time.After(5 * time.Second):
		return errors.New("publish confirm timeout")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}

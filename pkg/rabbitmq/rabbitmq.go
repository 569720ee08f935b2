package rabbitmq

import (
	"github.com/rabbitmq/amqp091-go"
)

// Connect dials the broker and declares the durable queue used for alert
// email jobs. Publisher and Consumer each take their own channel from the
// returned connection.
func Connect(url, queueName string) (*amqp091.Connection, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

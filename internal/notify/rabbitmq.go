package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// RabbitMQNotifier publishes notification messages to a fanout exchange for
// the external delivery workers (email, chat bot).
type RabbitMQNotifier struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	exchange   string
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

func NewRabbitMQNotifier(cfg RabbitMQConfig) (*RabbitMQNotifier, error) {
	connection, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	channel, err := connection.Channel()
	if err != nil {
		_ = connection.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(cfg.Exchange, "fanout", true, false, false, false, nil); err != nil {
		_ = connection.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &RabbitMQNotifier{
		connection: connection,
		channel:    channel,
		exchange:   cfg.Exchange,
	}, nil
}

func (n *RabbitMQNotifier) Notify(_ context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	err = n.channel.Publish(
		n.exchange,
		string(msg.Audience), // routing key, ignored by fanout but kept for tracing
		false,
		false,
		amqp.Publishing{
			ContentType:     "application/json",
			ContentEncoding: "utf-8",
			Body:            body,
			DeliveryMode:    amqp.Persistent,
			Timestamp:       time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (n *RabbitMQNotifier) Close() {
	if n.connection != nil {
		_ = n.connection.Close()
	}
}

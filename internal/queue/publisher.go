package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher delivers booking events. Implementations must be safe to call
// from request handlers: failures are reported, never fatal.
type Publisher interface {
	Publish(ctx context.Context, queueName string, event BookingEvent) error
}

// AMQPPublisher publishes persistent JSON messages to durable queues. A
// connection is dialed per publish so a broker restart never leaves the
// service holding a dead channel; booking volume does not justify pooling.
type AMQPPublisher struct {
	url string
	log *zap.Logger
}

func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		url: url,
		log: log.With(zap.String("component", "amqp_publisher")),
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, queueName string, event BookingEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("AMQP dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("AMQP channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Error("AMQP queue declare failed",
			zap.Error(err),
			zap.String("queue", queueName),
		)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("AMQP marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Error("AMQP publish failed",
			zap.Error(err),
			zap.String("queue", queueName),
		)
		return err
	}

	return nil
}

// NopPublisher is used when the broker is disabled in config.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, BookingEvent) error { return nil }

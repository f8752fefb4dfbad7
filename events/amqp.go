package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"resto/entity"
)

const (
	exchangeType   = "topic"
	eventVersion   = "1.0.0"
	publishTimeout = 5 * time.Second
)

// Envelope is the message body published for each change.
type Envelope struct {
	EventID      string        `json:"event_id"`
	EventType    string        `json:"event_type"`
	EventVersion string        `json:"event_version"`
	Timestamp    string        `json:"timestamp"`
	Payload      entity.Change `json:"payload"`
}

// NewEnvelope wraps c with a fresh event id.
func NewEnvelope(c entity.Change, at time.Time) Envelope {
	return Envelope{
		EventID:      uuid.New().String(),
		EventType:    RoutingKey(c),
		EventVersion: eventVersion,
		Timestamp:    at.UTC().Format(time.RFC3339),
		Payload:      c,
	}
}

// RoutingKey is "pos.<entity>.<action>".
func RoutingKey(c entity.Change) string {
	return fmt.Sprintf("pos.%s.%s", c.Entity, c.Action)
}

// Forwarder republishes bus changes to a RabbitMQ topic exchange.
type Forwarder struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *zap.Logger
}

func NewForwarder(url, exchange string, log *zap.Logger) (*Forwarder, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	log.Info("Connected to RabbitMQ", zap.String("exchange", exchange))
	return &Forwarder{conn: conn, channel: channel, exchange: exchange, log: log}, nil
}

// Attach subscribes the forwarder to bus. Publishing happens off the
// request path, one message at a time.
func (f *Forwarder) Attach(b *Bus) error {
	return b.bus.SubscribeAsync(TopicChange, f.publish, true)
}

func (f *Forwarder) publish(c entity.Change) {
	env := NewEnvelope(c, time.Now())
	body, err := json.Marshal(env)
	if err != nil {
		f.log.Error("Failed to encode event", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	err = f.channel.PublishWithContext(ctx, f.exchange, env.EventType, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    env.EventID,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		f.log.Warn("Failed to publish event", zap.String("routing_key", env.EventType), zap.Error(err))
	}
}

func (f *Forwarder) Close() error {
	if f.channel != nil {
		f.channel.Close()
	}
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}

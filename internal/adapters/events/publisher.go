// Package events publishes domain events to an AMQP exchange for
// external consumers (mail workers, audit pipelines). Publishing is
// best-effort: the API never fails a request because the broker is down.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"transit-backoffice/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationCreated is emitted when a notification row is created
type NotificationCreated struct {
	NotificationID uint      `json:"notification_id"`
	UserID         uint      `json:"user_id"`
	Title          string    `json:"title"`
	CreatedAt      time.Time `json:"created_at"`
}

// Publisher publishes events to a topic exchange. A nil-connection
// publisher silently drops events.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher connects to the broker if configured. Returns a disabled
// publisher when the URL is empty or the broker is unreachable.
func NewPublisher(cfg config.AMQPConfig) *Publisher {
	if cfg.URL == "" {
		return &Publisher{}
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		log.Printf("⚠️ Warning: AMQP broker unreachable, event publishing disabled: %v", err)
		return &Publisher{}
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		log.Printf("⚠️ Warning: AMQP channel open failed, event publishing disabled: %v", err)
		return &Publisher{}
	}

	if err := channel.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		log.Printf("⚠️ Warning: AMQP exchange declare failed, event publishing disabled: %v", err)
		return &Publisher{}
	}

	log.Printf("✅ Event publisher connected [exchange: %s]", cfg.Exchange)
	return &Publisher{conn: conn, channel: channel, exchange: cfg.Exchange}
}

// Enabled reports whether a broker connection is available
func (p *Publisher) Enabled() bool {
	return p.channel != nil
}

// NotificationCreated publishes a notification.created event
func (p *Publisher) NotificationCreated(ctx context.Context, event NotificationCreated) {
	p.publish(ctx, "notification.created", event)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, payload interface{}) {
	if p.channel == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("⚠️ Warning: failed to encode event %s: %v", routingKey, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		log.Printf("⚠️ Warning: failed to publish event %s: %v", routingKey, err)
	}
}

// Close releases the broker connection
func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

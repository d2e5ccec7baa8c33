package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher -> tujuan event domain. Gagal publish tidak boleh menggagalkan request.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
	Close() error
}

// NoopPublisher dipakai bila AMQP_URL kosong
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                       { return nil }

// AMQPPublisher memakai satu koneksi dan satu channel untuk seluruh proses.
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	mu   sync.Mutex
}

// Dial membuka koneksi dan mendeklarasikan queue durable untuk setiap routing key.
func Dial(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	for _, name := range []string{RoutingReservationConfirmed, RoutingOrderTotalChanged} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("rabbitmq declare %s: %w", name, err)
		}
	}

	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", routingKey, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	// amqp.Channel tidak aman dipakai bersamaan
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, "", routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"pos_backend/pkg/store"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// KitchenFeed publishes order events to a topic exchange read by kitchen displays.
type KitchenFeed struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// DialKitchenFeed connects and declares the exchange.
func DialKitchenFeed(url, exchange string) (*KitchenFeed, error) {
	if url == "" {
		return nil, fmt.Errorf("RABBITMQ_URL not set")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %v", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %v", exchange, err)
	}
	return &KitchenFeed{conn: conn, ch: ch, exchange: exchange}, nil
}

// RoutingKey is kitchen.order.placed for new orders and
// kitchen.order.<status> for status changes.
func RoutingKey(event store.OrderEvent) string {
	if event.Kind == store.EventOrderPlaced {
		return "kitchen.order.placed"
	}
	return "kitchen.order." + strings.ToLower(string(event.Order.Status))
}

// Publish implements store.EventSink.
func (f *KitchenFeed) Publish(ctx context.Context, event store.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ch == nil {
		return fmt.Errorf("kitchen feed closed")
	}
	return f.ch.PublishWithContext(ctx, f.exchange, RoutingKey(event), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		MessageId:    event.Order.ID + ":" + string(event.Order.Status),
		Body:         body,
	})
}

// Close closes the channel and the connection.
func (f *KitchenFeed) Close() {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ch != nil {
		_ = f.ch.Close()
		f.ch = nil
	}
	if f.conn != nil {
		_ = f.conn.Close()
		f.conn = nil
	}
}

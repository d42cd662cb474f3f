package store

import (
	"context"
	"pos_backend/pkg/models"
	"time"
)

// EventKind names an order lifecycle event.
type EventKind string

const (
	EventOrderPlaced        EventKind = "order.placed"
	EventOrderStatusChanged EventKind = "order.status_changed"
)

// OrderEvent is emitted after an order is created or changes status.
type OrderEvent struct {
	Kind     EventKind          `json:"kind"`
	Order    models.Order       `json:"order"`
	Previous models.OrderStatus `json:"previous,omitempty"`
	At       time.Time          `json:"at"`
}

// EventSink receives order events. Publish runs on the write queue, so it may
// be retried and must tolerate duplicates.
type EventSink interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// emit queues the event once per sink so one failing sink is retried alone.
func (s *AppState) emit(event OrderEvent) {
	for _, sink := range s.sinks {
		sink := sink
		s.write("publish "+string(event.Kind)+" "+event.Order.ID, func(ctx context.Context) error {
			return sink.Publish(ctx, event)
		})
	}
}

// Package events publishes order lifecycle events for downstream consumers
// (fulfilment dashboards, notification workers).
package events

import "context"

const (
	TopicOrderPlaced = "orders.placed"
	TopicOrderStatus = "orders.status"
)

// OrderEvent is the payload published on both order topics.
type OrderEvent struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id,omitempty"`
	GuestID string `json:"guest_id,omitempty"`
	Status  string `json:"status"`
	Total   string `json:"total"`
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

// Noop is used when no broker is configured; order flow must not depend on
// messaging being available.
type Noop struct{}

func (Noop) Publish(ctx context.Context, topic, key string, event any) error {
	return nil
}

// Package events defines the integration events published when an order moves
// through its lifecycle, together with the type tags used to route them on
// the wire. Events are serialized as UTF-8 JSON; the type tag travels in the
// message envelope, not in the body.
package events

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Type tags identifying each event kind on the wire. Consumers use the tag
// from the message envelope to pick the concrete type to deserialize into.
const (
	TypeOrderCreated   = "OrderCreated"
	TypeOrderProcessed = "OrderProcessed"
	TypeOrderShipped   = "OrderShipped"
	TypeOrderCompleted = "OrderCompleted"
	TypeOrderCancelled = "OrderCancelled"
)

// Event is the contract every integration event satisfies. The event id
// doubles as the broker message id, giving consumers a de-duplication key
// under at-least-once delivery.
type Event interface {
	EventID() kernel.UUID
	EventType() string
}

// Base carries the fields shared by every integration event.
type Base struct {
	ID         kernel.UUID `json:"id"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// NewBase stamps a fresh event identity with the current UTC time.
func NewBase() Base {
	return Base{
		ID:         kernel.NewUUID(),
		OccurredAt: time.Now().UTC(),
	}
}

// EventID returns the unique event identifier.
func (b Base) EventID() kernel.UUID {
	return b.ID
}

// OrderCreated is published when a new order is accepted in Pending status.
type OrderCreated struct {
	Base
	OrderID     kernel.UUID     `json:"orderId"`
	CustomerID  string          `json:"customerId"`
	OrderDate   time.Time       `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// EventType returns the wire type tag for OrderCreated.
func (OrderCreated) EventType() string { return TypeOrderCreated }

// OrderProcessed is published when an order enters Processing.
type OrderProcessed struct {
	Base
	OrderID     kernel.UUID `json:"orderId"`
	ProcessedAt time.Time   `json:"processedAt"`
}

// EventType returns the wire type tag for OrderProcessed.
func (OrderProcessed) EventType() string { return TypeOrderProcessed }

// OrderShipped is published when an order is shipped, carrying the optional
// carrier tracking number.
type OrderShipped struct {
	Base
	OrderID        kernel.UUID `json:"orderId"`
	ShippedAt      time.Time   `json:"shippedAt"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
}

// EventType returns the wire type tag for OrderShipped.
func (OrderShipped) EventType() string { return TypeOrderShipped }

// OrderCompleted is published when an order reaches its Completed terminal state.
type OrderCompleted struct {
	Base
	OrderID     kernel.UUID `json:"orderId"`
	CompletedAt time.Time   `json:"completedAt"`
}

// EventType returns the wire type tag for OrderCompleted.
func (OrderCompleted) EventType() string { return TypeOrderCompleted }

// OrderCancelled is published when an order is cancelled, carrying the
// optional cancellation reason.
type OrderCancelled struct {
	Base
	OrderID     kernel.UUID `json:"orderId"`
	CancelledAt time.Time   `json:"cancelledAt"`
	Reason      string      `json:"reason,omitempty"`
}

// EventType returns the wire type tag for OrderCancelled.
func (OrderCancelled) EventType() string { return TypeOrderCancelled }

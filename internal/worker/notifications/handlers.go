// Package notifications contains the event handlers behind the notification
// worker. Each handler reacts to one order lifecycle event; today they emit
// structured notification logs, which is where a mail or push integration
// would hang off.
package notifications

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/events"
	"orderflow/internal/worker"
)

// OrderCreatedHandler notifies about newly placed orders.
type OrderCreatedHandler struct {
	logger *slog.Logger
}

// NewOrderCreatedHandler creates a handler for OrderCreated events.
func NewOrderCreatedHandler(logger *slog.Logger) *OrderCreatedHandler {
	return &OrderCreatedHandler{logger: logger.With("component", "order_created_handler")}
}

// Handle records the order-received notification.
func (h *OrderCreatedHandler) Handle(ctx context.Context, event events.OrderCreated) error {
	h.logger.InfoContext(ctx, "order received, notifying customer",
		"order_id", event.OrderID.String(),
		"customer_id", event.CustomerID,
		"total_amount", event.TotalAmount.String(),
		"event_id", event.EventID().String())
	return nil
}

// OrderProcessedHandler notifies about orders entering processing.
type OrderProcessedHandler struct {
	logger *slog.Logger
}

// NewOrderProcessedHandler creates a handler for OrderProcessed events.
func NewOrderProcessedHandler(logger *slog.Logger) *OrderProcessedHandler {
	return &OrderProcessedHandler{logger: logger.With("component", "order_processed_handler")}
}

// Handle records the order-processing notification.
func (h *OrderProcessedHandler) Handle(ctx context.Context, event events.OrderProcessed) error {
	h.logger.InfoContext(ctx, "order is being processed, notifying customer",
		"order_id", event.OrderID.String(),
		"processed_at", event.ProcessedAt,
		"event_id", event.EventID().String())
	return nil
}

// OrderShippedHandler notifies about shipped orders.
type OrderShippedHandler struct {
	logger *slog.Logger
}

// NewOrderShippedHandler creates a handler for OrderShipped events.
func NewOrderShippedHandler(logger *slog.Logger) *OrderShippedHandler {
	return &OrderShippedHandler{logger: logger.With("component", "order_shipped_handler")}
}

// Handle records the shipment notification, including the tracking number
// when the shipment carries one.
func (h *OrderShippedHandler) Handle(ctx context.Context, event events.OrderShipped) error {
	attrs := []any{
		"order_id", event.OrderID.String(),
		"shipped_at", event.ShippedAt,
		"event_id", event.EventID().String(),
	}
	if event.TrackingNumber != "" {
		attrs = append(attrs, "tracking_number", event.TrackingNumber)
	}

	h.logger.InfoContext(ctx, "order shipped, notifying customer", attrs...)
	return nil
}

// OrderCompletedHandler notifies about delivered orders.
type OrderCompletedHandler struct {
	logger *slog.Logger
}

// NewOrderCompletedHandler creates a handler for OrderCompleted events.
func NewOrderCompletedHandler(logger *slog.Logger) *OrderCompletedHandler {
	return &OrderCompletedHandler{logger: logger.With("component", "order_completed_handler")}
}

// Handle records the delivery notification.
func (h *OrderCompletedHandler) Handle(ctx context.Context, event events.OrderCompleted) error {
	h.logger.InfoContext(ctx, "order delivered, notifying customer",
		"order_id", event.OrderID.String(),
		"completed_at", event.CompletedAt,
		"event_id", event.EventID().String())
	return nil
}

// OrderCancelledHandler notifies about cancelled orders.
type OrderCancelledHandler struct {
	logger *slog.Logger
}

// NewOrderCancelledHandler creates a handler for OrderCancelled events.
func NewOrderCancelledHandler(logger *slog.Logger) *OrderCancelledHandler {
	return &OrderCancelledHandler{logger: logger.With("component", "order_cancelled_handler")}
}

// Handle records the cancellation notification, including the reason when
// one was given.
func (h *OrderCancelledHandler) Handle(ctx context.Context, event events.OrderCancelled) error {
	attrs := []any{
		"order_id", event.OrderID.String(),
		"cancelled_at", event.CancelledAt,
		"event_id", event.EventID().String(),
	}
	if event.Reason != "" {
		attrs = append(attrs, "reason", event.Reason)
	}

	h.logger.InfoContext(ctx, "order cancelled, notifying customer", attrs...)
	return nil
}

// RegisterAll binds every lifecycle event to its notification handler.
func RegisterAll(registry *worker.Registry, logger *slog.Logger) {
	created := NewOrderCreatedHandler(logger)
	processed := NewOrderProcessedHandler(logger)
	shipped := NewOrderShippedHandler(logger)
	completed := NewOrderCompletedHandler(logger)
	cancelled := NewOrderCancelledHandler(logger)

	worker.Register(registry, events.TypeOrderCreated, func() worker.Handler[events.OrderCreated] {
		return created
	})
	worker.Register(registry, events.TypeOrderProcessed, func() worker.Handler[events.OrderProcessed] {
		return processed
	})
	worker.Register(registry, events.TypeOrderShipped, func() worker.Handler[events.OrderShipped] {
		return shipped
	})
	worker.Register(registry, events.TypeOrderCompleted, func() worker.Handler[events.OrderCompleted] {
		return completed
	})
	worker.Register(registry, events.TypeOrderCancelled, func() worker.Handler[events.OrderCancelled] {
		return cancelled
	})
}

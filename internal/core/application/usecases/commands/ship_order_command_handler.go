package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/events"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// ShipOrderCommandHandler moves a Processing order into Shipped, records the
// tracking number when one was provided, and publishes an OrderShipped event
// after the change is committed.
type ShipOrderCommandHandler struct {
	statusChanger
}

// NewShipOrderCommandHandler creates a handler for the shipping transition.
func NewShipOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		statusChanger: newStatusChanger(uowFactory, publisher, logger, "ship_order_command_handler"),
	}
}

// Handle processes the command. Only Processing orders can ship; any other
// source status yields OutcomeRejected. The tracking number is assigned
// before the order is persisted so the event and the stored row agree.
func (h *ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return OutcomeFailed, err
	}

	return h.changeStatus(ctx, statusChange{
		orderID: cmd.OrderID(),
		target:  order.Shipped,
		prepare: func(o *order.Order) error {
			if cmd.TrackingNumber() == "" {
				return nil
			}
			return o.AssignTracking(cmd.TrackingNumber())
		},
		event: func(o *order.Order, occurredAt time.Time) events.Event {
			shipped := events.OrderShipped{
				Base:      events.NewBase(),
				OrderID:   o.ID(),
				ShippedAt: occurredAt,
			}
			if tracking := o.TrackingNumber(); tracking != nil {
				shipped.TrackingNumber = *tracking
			}
			return shipped
		},
	})
}

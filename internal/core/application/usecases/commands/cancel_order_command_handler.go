package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/events"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// CancelOrderCommandHandler moves an order that has not shipped into the
// terminal Cancelled status and publishes an OrderCancelled event after the
// change is committed.
type CancelOrderCommandHandler struct {
	statusChanger
}

// NewCancelOrderCommandHandler creates a handler for the cancellation
// transition.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		statusChanger: newStatusChanger(uowFactory, publisher, logger, "cancel_order_command_handler"),
	}
}

// Handle processes the command. Cancellation is allowed from Pending and
// Processing only; shipped and terminal orders yield OutcomeRejected. The
// reason, when provided, is recorded on the order and carried in the event.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return OutcomeFailed, err
	}

	return h.changeStatus(ctx, statusChange{
		orderID: cmd.OrderID(),
		target:  order.Cancelled,
		reason:  cmd.Reason(),
		event: func(o *order.Order, occurredAt time.Time) events.Event {
			cancelled := events.OrderCancelled{
				Base:        events.NewBase(),
				OrderID:     o.ID(),
				CancelledAt: occurredAt,
			}
			if reason := o.CancellationReason(); reason != nil {
				cancelled.Reason = *reason
			}
			return cancelled
		},
	})
}

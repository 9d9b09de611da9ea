package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/events"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// CompleteOrderCommandHandler moves a Shipped order into the terminal
// Completed status and publishes an OrderCompleted event after the change is
// committed.
type CompleteOrderCommandHandler struct {
	statusChanger
}

// NewCompleteOrderCommandHandler creates a handler for the completion
// transition.
func NewCompleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		statusChanger: newStatusChanger(uowFactory, publisher, logger, "complete_order_command_handler"),
	}
}

// Handle processes the command. Only Shipped orders can complete; any other
// source status yields OutcomeRejected.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return OutcomeFailed, err
	}

	return h.changeStatus(ctx, statusChange{
		orderID: cmd.OrderID(),
		target:  order.Completed,
		event: func(o *order.Order, occurredAt time.Time) events.Event {
			return events.OrderCompleted{
				Base:        events.NewBase(),
				OrderID:     o.ID(),
				CompletedAt: occurredAt,
			}
		},
	})
}

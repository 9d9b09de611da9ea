package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/events"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// ProcessOrderCommandHandler moves a Pending order into Processing and
// publishes an OrderProcessed event after the change is committed.
type ProcessOrderCommandHandler struct {
	statusChanger
}

// NewProcessOrderCommandHandler creates a handler for the processing
// transition.
func NewProcessOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ProcessOrderCommandHandler {
	return ProcessOrderCommandHandler{
		statusChanger: newStatusChanger(uowFactory, publisher, logger, "process_order_command_handler"),
	}
}

// Handle processes the command. Only Pending orders can start processing;
// any other source status yields OutcomeRejected.
func (h *ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return OutcomeFailed, err
	}

	return h.changeStatus(ctx, statusChange{
		orderID: cmd.OrderID(),
		target:  order.Processing,
		event: func(o *order.Order, occurredAt time.Time) events.Event {
			return events.OrderProcessed{
				Base:        events.NewBase(),
				OrderID:     o.ID(),
				ProcessedAt: occurredAt,
			}
		},
	})
}

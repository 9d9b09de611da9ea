package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/events"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates new orders in Pending status and publishes an OrderCreated event
// after the order is committed.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and an
// EventPublisher for the post-commit OrderCreated event.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "create_order_command_handler"),
	}
}

// Handle processes the order creation command.
// Persists the new Pending order atomically, then publishes OrderCreated.
// A publish failure after commit surfaces as OutcomePublishFailed with the
// persisted order kept; the event can be re-published by operational tooling.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return OutcomeFailed, err
	}

	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		item, err := order.NewItem(kernel.NewUUID(), line.ProductID, line.Quantity, line.UnitPrice)
		if err != nil {
			return OutcomeFailed, err
		}
		items = append(items, item)
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), items)
	if err != nil {
		return OutcomeFailed, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return OutcomeFailed, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return OutcomeFailed, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OutcomeFailed, err
	}

	h.logger.InfoContext(ctx, "order created",
		"order_id", newOrder.ID().String(),
		"customer_id", newOrder.CustomerID(),
		"total_amount", newOrder.TotalAmount().String())

	event := events.OrderCreated{
		Base:        events.NewBase(),
		OrderID:     newOrder.ID(),
		CustomerID:  newOrder.CustomerID(),
		OrderDate:   newOrder.OrderDate(),
		TotalAmount: newOrder.TotalAmount(),
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "order created but event publication failed",
			"order_id", newOrder.ID().String(), "error", err)
		return OutcomePublishFailed, err
	}

	return OutcomeSucceeded, nil
}

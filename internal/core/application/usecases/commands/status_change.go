package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/application/events"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// statusChange describes one lifecycle command execution: the target status,
// an optional reason (recorded on cancellation), an optional aggregate
// preparation step run after the transition, and the builder for the
// integration event published after commit.
type statusChange struct {
	orderID kernel.UUID
	target  order.Status
	reason  string
	prepare func(o *order.Order) error
	event   func(o *order.Order, occurredAt time.Time) events.Event
}

// statusChanger implements the load-transition-persist-publish flow shared
// by every lifecycle command handler. All status changes go through the
// transition service; handlers never touch the status field directly.
type statusChanger struct {
	uowFactory  OrderUoWFactory
	publisher   ports.EventPublisher
	transitions services.OrderStatusTransitionService
	logger      *slog.Logger
}

func newStatusChanger(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	component string,
) statusChanger {
	return statusChanger{
		uowFactory:  uowFactory,
		publisher:   publisher,
		transitions: services.NewOrderStatusTransitionService(),
		logger:      logger.With("component", component),
	}
}

// changeStatus loads the order, applies the transition, persists it, and
// publishes the event after commit.
//
// Business failures map to outcomes rather than errors: an unknown order id
// yields OutcomeNotFound and a rejected transition yields OutcomeRejected,
// both with a nil error and nothing persisted. A publish failure after
// commit yields OutcomePublishFailed with the persisted change kept; the
// status change is not rolled back.
func (h *statusChanger) changeStatus(ctx context.Context, change statusChange) (Outcome, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OutcomeFailed, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, change.orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "order not found", "order_id", change.orderID.String())
			return OutcomeNotFound, nil
		}
		return OutcomeFailed, err
	}

	eventTime := time.Now().UTC()
	if err = h.transitions.ChangeStatus(o, change.target, eventTime, change.reason); err != nil {
		if errors.Is(err, order.ErrInvalidTransition) {
			h.logger.WarnContext(ctx, "invalid status transition",
				"order_id", o.ID().String(),
				"from", o.Status().String(),
				"to", change.target.String(),
				"error", err)
			return OutcomeRejected, nil
		}
		return OutcomeFailed, err
	}

	if change.prepare != nil {
		if err = change.prepare(o); err != nil {
			return OutcomeFailed, err
		}
	}

	if err = repo.Update(ctx, o); err != nil {
		return OutcomeFailed, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OutcomeFailed, err
	}

	h.logger.InfoContext(ctx, "order status updated",
		"order_id", o.ID().String(), "status", change.target.String())

	if err = h.publisher.Publish(ctx, change.event(o, eventTime)); err != nil {
		h.logger.ErrorContext(ctx, "status change persisted but event publication failed",
			"order_id", o.ID().String(), "status", change.target.String(), "error", err)
		return OutcomePublishFailed, err
	}

	return OutcomeSucceeded, nil
}

package services

import (
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// OrderStatusTransitionService is the domain service through which every
// order lifecycle change flows. It validates the requested transition against
// the Status state machine and applies it to the aggregate, stamping the
// timestamp that corresponds to the target status.
//
// Business rules:
//   - Processing is reachable only from Pending
//   - Shipped is reachable only from Processing
//   - Completed is reachable only from Shipped
//   - Cancelled is reachable only from Pending or Processing
//   - A rejected transition leaves the order unmodified
//
// The service has no side effects beyond mutating the in-memory aggregate;
// persistence and event emission are the caller's responsibility, which keeps
// the state machine testable in isolation.
//
// Example usage:
//
//	svc := services.NewOrderStatusTransitionService()
//	if err := svc.ChangeStatus(o, order.Processing, time.Now().UTC(), ""); err != nil {
//	    // transition rejected, order unchanged
//	}
type OrderStatusTransitionService struct{}

// NewOrderStatusTransitionService creates a new OrderStatusTransitionService instance.
func NewOrderStatusTransitionService() OrderStatusTransitionService {
	return OrderStatusTransitionService{}
}

// ChangeStatus moves o to newStatus, stamping the corresponding timestamp
// with eventTime. The reason is recorded only when newStatus is Cancelled.
//
// Returns an InvalidTransitionError (matching order.ErrInvalidTransition)
// when the state machine rejects the pair, or a validation error when the
// order is nil or not properly constructed. On any error the order is left
// unmodified.
func (OrderStatusTransitionService) ChangeStatus(
	o *order.Order,
	newStatus order.Status,
	eventTime time.Time,
	reason string,
) error {
	if o == nil {
		return errs.NewValueIsRequiredError("order")
	}
	if err := o.Validate(); err != nil {
		return err
	}

	return o.ApplyStatusTransition(newStatus, eventTime, reason)
}

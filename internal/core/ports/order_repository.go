package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using optimistic
	// concurrency. Returns errs.VersionConflictError when the stored version
	// no longer matches the aggregate's version; the caller may re-read and
	// retry. Returns errs.ObjectNotFoundError when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its items. Returns errs.ObjectNotFoundError when no order matches.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

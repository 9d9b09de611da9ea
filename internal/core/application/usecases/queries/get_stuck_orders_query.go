package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetStuckOrdersQueryIsNotConstructed = errors.New(
	"GetStuckOrdersQuery must be created via NewGetStuckOrdersQuery constructor",
)

// GetStuckOrdersQuery retrieves orders that have sat in Pending or Processing
// longer than a threshold. Used by the stuck-order monitor to surface orders
// that likely need operator attention.
type GetStuckOrdersQuery struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetStuckOrdersQuery creates a query for orders placed before the cutoff
// that never progressed past Processing.
func NewGetStuckOrdersQuery(cutoff time.Time) (GetStuckOrdersQuery, error) {
	if cutoff.IsZero() {
		return GetStuckOrdersQuery{}, errs.NewValueIsRequiredError("cutoff")
	}

	return GetStuckOrdersQuery{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStuckOrdersQueryIsNotConstructed if validation fails.
func (q GetStuckOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStuckOrdersQueryIsNotConstructed)
}

// Cutoff returns the order-date threshold.
func (q GetStuckOrdersQuery) Cutoff() time.Time {
	return q.cutoff
}

// GetStuckOrdersQueryResponse represents one order stuck before the cutoff.
type GetStuckOrdersQueryResponse struct {
	ID         kernel.UUID
	CustomerID string
	Status     string
	OrderDate  time.Time
}

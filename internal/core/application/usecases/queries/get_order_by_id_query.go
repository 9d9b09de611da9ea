package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderByIDQueryIsNotConstructed = errors.New(
	"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
)

// GetOrderByIDQuery retrieves a single order with its items for read-side
// consumers such as the HTTP API.
type GetOrderByIDQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a query to retrieve one order by its
// identifier.
func NewGetOrderByIDQuery(orderID kernel.UUID) (GetOrderByIDQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderByIDQuery{}, err
	}

	return GetOrderByIDQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderByIDQueryIsNotConstructed if validation fails.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderByIDQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderByIDQueryResponse is the read model of one order.
type GetOrderByIDQueryResponse struct {
	ID                 kernel.UUID
	CustomerID         string
	OrderDate          time.Time
	Status             string
	TotalAmount        decimal.Decimal
	TrackingNumber     *string
	CancellationReason *string
	Items              []OrderItemResponse
}

// OrderItemResponse is the read model of one order line.
type OrderItemResponse struct {
	ID        kernel.UUID
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

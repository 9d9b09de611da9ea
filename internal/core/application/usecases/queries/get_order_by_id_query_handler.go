package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderByIDQueryHandler reads one order with its items straight from the
// database, bypassing the aggregate. The total amount is derived from the
// stored lines rather than persisted.
type GetOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByIDQueryHandler creates a handler for single-order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderByIDQueryHandler(db *gorm.DB) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when no order
// matches the requested identifier.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (GetOrderByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	var (
		id                 uuid.UUID
		customerID         string
		orderDate          sql.NullTime
		status             int
		trackingNumber     *string
		cancellationReason *string
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			order_date,
			status,
			tracking_number,
			cancellation_reason
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(&id, &customerID, &orderDate, &status, &trackingNumber, &cancellationReason)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderByIDQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	response := GetOrderByIDQueryResponse{
		ID:                 orderID,
		CustomerID:         customerID,
		OrderDate:          orderDate.Time,
		Status:             order.Status(status).String(),
		TotalAmount:        decimal.Zero,
		TrackingNumber:     trackingNumber,
		CancellationReason: cancellationReason,
	}

	items, total, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	response.Items = items
	response.TotalAmount = total

	return response, nil
}

func (h GetOrderByIDQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemResponse, decimal.Decimal, error) {
	items := make([]OrderItemResponse, 0)
	total := decimal.Zero

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			productID string
			quantity  int
			unitPrice decimal.Decimal
		)

		if err = rows.Scan(&id, &productID, &quantity, &unitPrice); err != nil {
			return nil, decimal.Zero, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, decimal.Zero, idErr
		}

		items = append(items, OrderItemResponse{
			ID:        itemID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		})
		total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
	}

	if err = rows.Err(); err != nil {
		return nil, decimal.Zero, err
	}

	return items, total, nil
}

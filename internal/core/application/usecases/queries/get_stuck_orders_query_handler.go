package queries

import (
	"context"
	"database/sql"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStuckOrdersQueryHandler finds orders that never progressed past
// Processing before the cutoff.
type GetStuckOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStuckOrdersQueryHandler creates a handler for stuck-order queries.
// Requires a GORM database connection for query execution.
func NewGetStuckOrdersQueryHandler(db *gorm.DB) GetStuckOrdersQueryHandler {
	return GetStuckOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted oldest first so the monitor
// reports the longest-stuck orders at the top.
func (h GetStuckOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStuckOrdersQuery,
) ([]GetStuckOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stuck := make([]GetStuckOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			order_date
		FROM orders
		WHERE status IN (?, ?)
			AND order_date < ?
		ORDER BY order_date
	`, order.Pending, order.Processing, query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         uuid.UUID
			customerID string
			status     int
			orderDate  sql.NullTime
		)

		if err = rows.Scan(&id, &customerID, &status, &orderDate); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		stuck = append(stuck, GetStuckOrdersQueryResponse{
			ID:         orderID,
			CustomerID: customerID,
			Status:     order.Status(status).String(),
			OrderDate:  orderDate.Time,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stuck, nil
}

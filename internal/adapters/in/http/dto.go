package http

import (
	"time"

	"github.com/shopspring/decimal"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one requested order line in CreateOrderRequest.
type NewOrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID string         `json:"customerId"`
	Items      []NewOrderItem `json:"items"`
}

// CreateOrderResponse returns the identifier of the newly created order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// ShipOrderRequest is the optional body of POST /api/v1/orders/:id/ship.
type ShipOrderRequest struct {
	TrackingNumber string `json:"trackingNumber"`
}

// CancelOrderRequest is the optional body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderItem is one order line in OrderResponse.
type OrderItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderResponse is the body of GET /api/v1/orders/:id.
type OrderResponse struct {
	ID                 string          `json:"id"`
	CustomerID         string          `json:"customerId"`
	OrderDate          time.Time       `json:"orderDate"`
	Status             string          `json:"status"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	TrackingNumber     *string         `json:"trackingNumber,omitempty"`
	CancellationReason *string         `json:"cancellationReason,omitempty"`
	Items              []OrderItem     `json:"items"`
}

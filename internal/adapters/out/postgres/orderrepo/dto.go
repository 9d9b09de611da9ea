// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The version column carries the optimistic-concurrency token checked on
// every update.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID          string    `gorm:"index"`
	OrderDate           time.Time
	Status              int `gorm:"index"`
	TrackingNumber      *string
	ProcessingStartedAt *time.Time
	ShippedAt           *time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time
	CancellationReason  *string
	Version             int
	Items               []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted order line.
type OrderItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(18,2)"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		CustomerID:          aggregate.CustomerID(),
		OrderDate:           aggregate.OrderDate(),
		Status:              int(aggregate.Status()),
		TrackingNumber:      aggregate.TrackingNumber(),
		ProcessingStartedAt: aggregate.ProcessingStartedAt(),
		ShippedAt:           aggregate.ShippedAt(),
		CompletedAt:         aggregate.CompletedAt(),
		CancelledAt:         aggregate.CancelledAt(),
		CancellationReason:  aggregate.CancellationReason(),
		Version:             aggregate.Version(),
		Items:               items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lifecycle timestamps using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(itemID, itemDTO.ProductID, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                  id,
		CustomerID:          dto.CustomerID,
		OrderDate:           dto.OrderDate,
		Items:               items,
		Status:              order.Status(dto.Status),
		TrackingNumber:      dto.TrackingNumber,
		ProcessingStartedAt: dto.ProcessingStartedAt,
		ShippedAt:           dto.ShippedAt,
		CompletedAt:         dto.CompletedAt,
		CancelledAt:         dto.CancelledAt,
		CancellationReason:  dto.CancellationReason,
		Version:             dto.Version,
	})
}

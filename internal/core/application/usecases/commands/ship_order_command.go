package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrShipOrderCommandIsNotConstructed = errors.New(
	"ShipOrderCommand must be created via NewShipOrderCommand constructor",
)

// ShipOrderCommand represents a request to ship a processing order. The
// tracking number is optional; when present it is stored on the order before
// the shipment is persisted.
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewShipOrderCommand creates a command to ship an order. An empty tracking
// number means the shipment carries no tracking.
func NewShipOrderCommand(orderID kernel.UUID, trackingNumber string) (ShipOrderCommand, error) {
	orderCommand := ShipOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderCommand.setOrderID(orderID); err != nil {
		return ShipOrderCommand{}, err
	}

	orderCommand.trackingNumber = trackingNumber

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrShipOrderCommandIsNotConstructed if validation fails.
func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to ship.
func (c ShipOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TrackingNumber returns the carrier tracking number, empty when none was
// provided.
func (c ShipOrderCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *ShipOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

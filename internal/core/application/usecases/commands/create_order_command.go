package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerIDIsRequired = errors.New("customer id is required")
	ErrItemsAreRequired     = errors.New("order must have at least one item")
	ErrProductIDIsRequired  = errors.New("product id is required")
	ErrQuantityIsInvalid    = errors.New("quantity must be greater than 0")
	ErrUnitPriceIsInvalid   = errors.New("unit price cannot be negative")
)

// CreateOrderItem carries one requested order line inside CreateOrderCommand.
type CreateOrderItem struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderCommand represents a request to place a new order for a customer
// with at least one line item. The order starts in Pending status.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "customer-42", []CreateOrderItem{
//	    {ProductID: "sku-1", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID string
	items      []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the order id is valid, the customer id is not empty, and
// every item has a product, a positive quantity, and a non-negative price.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID string,
	items []CreateOrderItem,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the ordering customer.
func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	items := make([]CreateOrderItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return ErrCustomerIDIsRequired
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if item.ProductID == "" {
			return ErrProductIDIsRequired
		}
		if item.Quantity <= 0 {
			return ErrQuantityIsInvalid
		}
		if item.UnitPrice.IsNegative() {
			return ErrUnitPriceIsInvalid
		}
	}

	c.items = make([]CreateOrderItem, len(items))
	copy(c.items, items)
	return nil
}

package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item represents a single order line: a product, the quantity ordered, and
// the unit price captured at ordering time. Items are immutable after
// construction; they change only by being replaced through the owning Order.
type Item struct {
	// id is the unique identifier for the line item
	id kernel.UUID

	// productID identifies the ordered product
	productID string

	// quantity is the number of units ordered (must be positive)
	quantity int

	// unitPrice is the per-unit price at ordering time (must not be negative)
	unitPrice decimal.Decimal

	// isConstructed ensures the item was created via NewItem
	isConstructed bool
}

// NewItem creates a validated order line item.
//
// Parameters:
//   - id: Unique identifier for the item (must be a valid UUID)
//   - productID: Product identifier (must not be empty)
//   - quantity: Units ordered (must be greater than 0)
//   - unitPrice: Per-unit price (must not be negative)
//
// Returns the created item, or a validation error if any parameter is invalid.
func NewItem(id kernel.UUID, productID string, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	item := &Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the Item instance was properly constructed through NewItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the identifier of the ordered product.
func (i *Item) ProductID() string {
	return i.productID
}

// Quantity returns the number of units ordered.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price captured at ordering time.
func (i *Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Subtotal returns quantity multiplied by the unit price.
func (i *Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID string) error {
	if productID == "" {
		return errs.NewValueIsRequiredError("productID")
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice is invalid",
			fmt.Errorf("%s is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}

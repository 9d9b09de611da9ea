package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents a customer order in the system. It is the aggregate root that
// manages the order lifecycle from creation through processing and shipping to
// completion or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a customer identifier
//   - Must contain at least one line item, each individually valid
//   - The total amount is always derived from the current items
//   - Status transitions follow the Status state machine; there is no direct
//     status setter, so illegal transitions cannot be expressed
//   - Each per-transition timestamp is stamped exactly once, by the transition
//     that reaches the corresponding status
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the ordering customer
	customerID string

	// orderDate is when the order was placed (UTC)
	orderDate time.Time

	// items are the order lines (non-empty)
	items []*Item

	// status represents the current state in the order lifecycle
	status Status

	// trackingNumber is the carrier tracking reference (nil until shipped with one)
	trackingNumber *string

	// per-transition timestamps, each set exactly once when the transition occurs
	processingStartedAt *time.Time
	shippedAt           *time.Time
	completedAt         *time.Time
	cancelledAt         *time.Time

	// cancellationReason is recorded only when the order is cancelled with a reason
	cancellationReason *string

	// version is the persistence optimistic-concurrency token
	version int

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with the given items.
// This is the only way to create a valid new Order, ensuring all business
// invariants are maintained. The order date is stamped with the current UTC time.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - customerID: Identifier of the ordering customer (must not be empty)
//   - items: Order lines (must contain at least one valid item)
//
// Returns the created order, or a validation error if any parameter is invalid.
func NewOrder(id kernel.UUID, customerID string, items []*Item) (*Order, error) {
	order := &Order{
		status:        Pending,
		orderDate:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrderParams carries the persisted state needed to rehydrate an Order.
type RestoreOrderParams struct {
	ID                  kernel.UUID
	CustomerID          string
	OrderDate           time.Time
	Items               []*Item
	Status              Status
	TrackingNumber      *string
	ProcessingStartedAt *time.Time
	ShippedAt           *time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time
	CancellationReason  *string
	Version             int
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts any valid status and the recorded timestamps, but it applies the
// same identity, customer, and item validation, and rejects invalid statuses.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	order := &Order{
		orderDate:           params.OrderDate,
		trackingNumber:      params.TrackingNumber,
		processingStartedAt: params.ProcessingStartedAt,
		shippedAt:           params.ShippedAt,
		completedAt:         params.CompletedAt,
		cancelledAt:         params.CancelledAt,
		cancellationReason:  params.CancellationReason,
		version:             params.Version,
		isConstructed:       true,
	}

	if err := errors.Join(
		order.setID(params.ID),
		order.setCustomerID(params.CustomerID),
		order.setItems(params.Items),
		order.setStatus(params.Status),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct, and should be called when reconstructing orders
// from persistence to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the ordering customer.
func (o *Order) CustomerID() string {
	return o.customerID
}

// OrderDate returns when the order was placed.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// Items returns the order lines. The returned slice is a copy; items
// themselves are immutable.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// TrackingNumber returns the carrier tracking reference.
// Returns nil if no tracking number was assigned.
func (o *Order) TrackingNumber() *string {
	return o.trackingNumber
}

// ProcessingStartedAt returns when the order entered Processing, or nil.
func (o *Order) ProcessingStartedAt() *time.Time {
	return o.processingStartedAt
}

// ShippedAt returns when the order was shipped, or nil.
func (o *Order) ShippedAt() *time.Time {
	return o.shippedAt
}

// CompletedAt returns when the order was completed, or nil.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// CancellationReason returns the reason recorded on cancellation, or nil.
func (o *Order) CancellationReason() *string {
	return o.cancellationReason
}

// Version returns the persistence optimistic-concurrency token.
func (o *Order) Version() int {
	return o.version
}

// TotalAmount returns the sum of quantity times unit price over the current
// items. The total is always derived, never stored independently.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// AssignTracking records the carrier tracking reference on the order.
// An empty tracking number is rejected; assigning is allowed regardless of
// status because carriers may issue the reference before or at shipping time.
func (o *Order) AssignTracking(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	o.trackingNumber = &trackingNumber
	return nil
}

// ApplyStatusTransition moves the order to newStatus after checking the
// transition against the Status state machine, stamping the timestamp that
// corresponds to the target status.
//
// The reason is recorded only for Cancelled; it is ignored for every other
// target. On rejection the order is left completely unmodified and an
// InvalidTransitionError is returned.
//
// This method is the single mutation point for order status: it is invoked
// through the status transition domain service, and there is no other way
// to change the status field.
func (o *Order) ApplyStatusTransition(newStatus Status, eventTime time.Time, reason string) error {
	if err := o.status.CanTransitionTo(newStatus); err != nil {
		return err
	}

	o.status = newStatus
	switch newStatus {
	case Processing:
		o.processingStartedAt = &eventTime
	case Shipped:
		o.shippedAt = &eventTime
	case Completed:
		o.completedAt = &eventTime
	case Cancelled:
		o.cancelledAt = &eventTime
		if reason != "" {
			o.cancellationReason = &reason
		}
	case Pending, Unknown:
		// unreachable: CanTransitionTo rejects these targets
	}
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the ordering customer.
// This is a private method used only during construction.
func (o *Order) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerID")
	}
	o.customerID = customerID
	return nil
}

// setItems validates and sets the order lines. An order must have at least
// one item, and every item must have been constructed via NewItem.
// This is a private method used only during construction.
func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}

// setStatus validates and sets the status during rehydration.
// This is a private method used only during restoration from persistence.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

package order

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for every rejected status transition.
// Use errors.Is to classify rejections regardless of the specific pair.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a status transition the state machine does
// not allow. The order is left unmodified when this error is returned.
type InvalidTransitionError struct {
	From   Status
	To     Status
	Reason string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// NewInvalidTransitionErrorWithReason creates an InvalidTransitionError with
// an explanation of why the transition was rejected.
func NewInvalidTransitionErrorWithReason(from, to Status, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s -> %s (%s)", ErrInvalidTransition, e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Processing ──> Shipped ──> Completed
//	   │             │
//	   └─────────────┴──> Cancelled
//
// Completed and Cancelled are terminal states. Shipped orders cannot be
// cancelled. Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	Pending

	// Processing indicates the order has started fulfilment.
	Processing

	// Shipped indicates the order has left the warehouse.
	Shipped

	// Completed indicates the order has been delivered.
	// This is a terminal state with no further transitions allowed.
	Completed

	// Cancelled indicates the order was cancelled before shipping.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Processing: "Processing",
		Shipped:    "Shipped",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Processing: "Processing",
		Shipped:    "Shipped",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Processing, Shipped, Completed, Cancelled.
// Unknown (0) and any other values are invalid. This method is used to
// ensure Status values from external sources (e.g., database, API) are
// valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface and is safe to call on any
// Status value, including invalid ones, which render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo checks whether the state machine allows moving from the
// current status to target, without performing the transition.
//
// Allowed transitions:
//   - Pending -> Processing
//   - Processing -> Shipped
//   - Shipped -> Completed
//   - Pending or Processing -> Cancelled
//
// Every other pair is rejected with an InvalidTransitionError; Pending and
// Unknown are never valid targets (Pending is the initial state only).
func (s Status) CanTransitionTo(target Status) error {
	switch target {
	case Processing:
		if s != Pending {
			return NewInvalidTransitionError(s, target)
		}
	case Shipped:
		if s != Processing {
			return NewInvalidTransitionErrorWithReason(s, target, "order is not in Processing state, cannot ship")
		}
	case Completed:
		if s != Shipped {
			return NewInvalidTransitionErrorWithReason(s, target, "order is not in Shipped state, cannot complete")
		}
	case Cancelled:
		switch s {
		case Cancelled:
			return NewInvalidTransitionErrorWithReason(s, target, "order is already cancelled")
		case Completed, Shipped:
			return NewInvalidTransitionErrorWithReason(s, target, "cannot cancel a completed or shipped order")
		case Unknown:
			return NewInvalidTransitionError(s, target)
		}
	default:
		return NewInvalidTransitionError(s, target)
	}
	return nil
}

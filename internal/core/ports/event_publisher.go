package ports

import (
	"context"
	"errors"
	"fmt"

	"orderflow/internal/core/application/events"
)

// ErrPublishFailed is the sentinel for every failed event publication,
// whether from a non-transient broker error or from exhausted retries.
var ErrPublishFailed = errors.New("event publish failed")

// PublishFailedError reports that an integration event could not be
// delivered to the broker. The caller decides whether the surrounding
// operation fails or the persisted state is kept with event delivery
// deferred to operational tooling.
type PublishFailedError struct {
	EventType string
	EventID   string
	Cause     error
}

// NewPublishFailedError creates a PublishFailedError wrapping an underlying cause.
func NewPublishFailedError(eventType, eventID string, cause error) *PublishFailedError {
	return &PublishFailedError{EventType: eventType, EventID: eventID, Cause: cause}
}

func (e *PublishFailedError) Error() string {
	return fmt.Sprintf("%s: event is: %s, ID is: %s (cause: %s)",
		ErrPublishFailed, e.EventType, e.EventID, e.Cause)
}

func (e *PublishFailedError) Unwrap() error {
	return ErrPublishFailed
}

// EventPublisher sends integration events to the message broker.
//
// Implementations are long-lived, shared across all callers, and safe for
// concurrent use. Delivery is at-least-once: under retry the broker may
// receive the same message more than once, so consumers must tolerate
// duplicates keyed by the event id.
type EventPublisher interface {
	// Publish serializes the event and sends exactly one message attempt
	// (plus bounded retries on transient faults). Failures surface as
	// PublishFailedError.
	Publish(ctx context.Context, event events.Event) error

	// Close releases the underlying broker connection.
	Close() error
}

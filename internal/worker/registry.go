// Package worker implements the consuming side of the event pipeline: a
// registry mapping event type tags to typed handlers, and a dispatcher that
// pulls deliveries off the broker queue and settles them according to the
// handler outcome.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDeserialization is the sentinel for event bodies that could not be
// decoded. The dispatcher dead-letters these instead of redelivering them,
// since a malformed body never gets better.
var ErrDeserialization = errors.New("event body deserialization failed")

// DeserializationError reports an event body that failed to decode into the
// type registered for its tag.
type DeserializationError struct {
	Tag   string
	Cause error
}

// NewDeserializationError creates a DeserializationError wrapping an underlying cause.
func NewDeserializationError(tag string, cause error) *DeserializationError {
	return &DeserializationError{Tag: tag, Cause: cause}
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("%s: tag is: %s (cause: %s)", ErrDeserialization, e.Tag, e.Cause)
}

func (e *DeserializationError) Unwrap() error {
	return ErrDeserialization
}

// Handler processes one decoded event of type T.
type Handler[T any] interface {
	Handle(ctx context.Context, event T) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[T any] func(ctx context.Context, event T) error

// Handle calls f.
func (f HandlerFunc[T]) Handle(ctx context.Context, event T) error {
	return f(ctx, event)
}

// Registry maps event type tags to decode-and-dispatch closures. Register
// all handlers before the dispatcher starts; the registry is read-only
// afterwards and safe for concurrent TryHandle calls.
type Registry struct {
	handlers map[string]func(ctx context.Context, body []byte) (bool, error)
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]func(ctx context.Context, body []byte) (bool, error)),
	}
}

// TryHandle decodes and dispatches the body for the given tag. The boolean
// reports whether a handler took the event: false with a nil error means no
// handler is registered for the tag (or the body decoded to null) and the
// message should be settled without processing.
func (r *Registry) TryHandle(ctx context.Context, tag string, body []byte) (bool, error) {
	handle, ok := r.handlers[tag]
	if !ok {
		return false, nil
	}
	return handle(ctx, body)
}

// Register binds a tag to a typed handler. The resolver runs on every
// delivery, so handlers can be swapped or constructed lazily; a nil result
// means the event is skipped. A JSON body that fails to decode yields a
// DeserializationError; a literal null body is skipped like a missing
// handler.
func Register[T any](r *Registry, tag string, resolve func() Handler[T]) {
	r.handlers[tag] = func(ctx context.Context, body []byte) (bool, error) {
		handler := resolve()
		if handler == nil {
			return false, nil
		}

		var event *T
		if err := json.Unmarshal(body, &event); err != nil {
			return true, NewDeserializationError(tag, err)
		}
		if event == nil {
			return false, nil
		}

		return true, handler.Handle(ctx, *event)
	}
}

package amqpbus_test

import (
	"errors"
	"testing"

	"orderflow/internal/adapters/out/amqpbus"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type timeoutError struct{ timeout bool }

func (e timeoutError) Error() string   { return "network fault" }
func (e timeoutError) Timeout() bool   { return e.timeout }
func (e timeoutError) Temporary() bool { return e.timeout }

func TestIsTransient(t *testing.T) {
	tests := map[string]struct {
		err  error
		want bool
	}{
		"closed channel": {
			err:  amqp.ErrClosed,
			want: true,
		},
		"connection forced by broker": {
			err:  &amqp.Error{Code: amqp.ConnectionForced, Reason: "shutdown"},
			want: true,
		},
		"recoverable broker error": {
			err:  &amqp.Error{Code: amqp.ResourceLocked, Reason: "locked", Recover: true},
			want: true,
		},
		"access refused": {
			err:  &amqp.Error{Code: amqp.AccessRefused, Reason: "forbidden"},
			want: false,
		},
		"not found": {
			err:  &amqp.Error{Code: amqp.NotFound, Reason: "no exchange"},
			want: false,
		},
		"network timeout": {
			err:  timeoutError{timeout: true},
			want: true,
		},
		"network fault without timeout": {
			err:  timeoutError{timeout: false},
			want: false,
		},
		"plain error": {
			err:  errors.New("marshal failed"),
			want: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, amqpbus.IsTransient(test.err))
		})
	}
}

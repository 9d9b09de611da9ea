package services_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "sku-1", 2, decimal.NewFromInt(10))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", []*order.Item{item})
	require.NoError(t, err)
	return o
}

func advanceTo(t *testing.T, svc services.OrderStatusTransitionService, o *order.Order, target order.Status) {
	t.Helper()
	path := map[order.Status][]order.Status{
		order.Processing: {order.Processing},
		order.Shipped:    {order.Processing, order.Shipped},
		order.Completed:  {order.Processing, order.Shipped, order.Completed},
		order.Cancelled:  {order.Cancelled},
	}
	for _, step := range path[target] {
		require.NoError(t, svc.ChangeStatus(o, step, time.Now().UTC(), ""))
	}
}

func TestOrderStatusTransitionService_ChangeStatus(t *testing.T) {
	svc := services.NewOrderStatusTransitionService()
	eventTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid forward transitions succeed and stamp timestamps", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, svc.ChangeStatus(o, order.Processing, eventTime, ""))
		assert.Equal(t, order.Processing, o.Status())
		assert.Equal(t, eventTime, *o.ProcessingStartedAt())

		shippedAt := eventTime.Add(time.Hour)
		require.NoError(t, svc.ChangeStatus(o, order.Shipped, shippedAt, ""))
		assert.Equal(t, order.Shipped, o.Status())
		assert.Equal(t, shippedAt, *o.ShippedAt())

		completedAt := eventTime.Add(2 * time.Hour)
		require.NoError(t, svc.ChangeStatus(o, order.Completed, completedAt, ""))
		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, completedAt, *o.CompletedAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("invalid transitions are rejected and leave state unchanged", func(t *testing.T) {
		cases := []struct {
			name   string
			from   order.Status
			target order.Status
		}{
			{"cannot process a processing order", order.Processing, order.Processing},
			{"cannot process a shipped order", order.Shipped, order.Processing},
			{"cannot ship a pending order", order.Pending, order.Shipped},
			{"cannot ship a completed order", order.Completed, order.Shipped},
			{"cannot complete a pending order", order.Pending, order.Completed},
			{"cannot complete a processing order", order.Processing, order.Completed},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				o := newOrder(t)
				if tc.from != order.Pending {
					advanceTo(t, svc, o, tc.from)
				}
				statusBefore := o.Status()

				err := svc.ChangeStatus(o, tc.target, eventTime, "")

				require.ErrorIs(t, err, order.ErrInvalidTransition)
				assert.Equal(t, statusBefore, o.Status())
			})
		}
	})

	t.Run("cancel succeeds from Pending", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, svc.ChangeStatus(o, order.Cancelled, eventTime, "changed my mind"))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, eventTime, *o.CancelledAt())
		assert.Equal(t, "changed my mind", *o.CancellationReason())
		assert.Nil(t, o.CompletedAt())
	})

	t.Run("cancel succeeds from Processing", func(t *testing.T) {
		o := newOrder(t)
		advanceTo(t, svc, o, order.Processing)

		require.NoError(t, svc.ChangeStatus(o, order.Cancelled, eventTime, "out of stock"))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("cancel is rejected from Shipped, Completed, and Cancelled", func(t *testing.T) {
		for _, from := range []order.Status{order.Shipped, order.Completed, order.Cancelled} {
			o := newOrder(t)
			advanceTo(t, svc, o, from)

			err := svc.ChangeStatus(o, order.Cancelled, eventTime, "too late")

			require.ErrorIs(t, err, order.ErrInvalidTransition, "cancel from %s", from)
			assert.Equal(t, from, o.Status())
		}
	})

	t.Run("nil order is rejected", func(t *testing.T) {
		err := svc.ChangeStatus(nil, order.Processing, eventTime, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unconstructed order is rejected", func(t *testing.T) {
		var o order.Order
		err := svc.ChangeStatus(&o, order.Processing, eventTime, "")
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, productID string, quantity int, unitPrice string) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), productID, quantity, decimal.RequireFromString(unitPrice))
	require.NoError(t, err)
	return item
}

func newPendingOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []*order.Item{mustItem(t, "sku-1", 1, "10")}
	}
	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", items)
	require.NoError(t, err)
	return o
}

func TestNewItem(t *testing.T) {
	t.Run("creates valid item", func(t *testing.T) {
		id := kernel.NewUUID()
		item, err := order.NewItem(id, "sku-1", 2, decimal.RequireFromString("9.99"))

		require.NoError(t, err)
		assert.True(t, item.ID().IsEqual(id))
		assert.Equal(t, "sku-1", item.ProductID())
		assert.Equal(t, 2, item.Quantity())
		assert.True(t, item.UnitPrice().Equal(decimal.RequireFromString("9.99")))
	})

	t.Run("zero unit price is allowed", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "sku-free", 1, decimal.Zero)
		require.NoError(t, err)
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		_, err := order.NewItem(kernel.UUID{}, "sku-1", 1, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects empty product id", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "", 1, decimal.Zero)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		for _, quantity := range []int{0, -1} {
			_, err := order.NewItem(kernel.NewUUID(), "sku-1", quantity, decimal.Zero)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "sku-1", 1, decimal.RequireFromString("-0.01"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("subtotal is quantity times unit price", func(t *testing.T) {
		item := mustItem(t, "sku-1", 3, "2.50")
		assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("7.50")))
	})
}

func TestItem_Validate(t *testing.T) {
	t.Run("constructed item is valid", func(t *testing.T) {
		require.NoError(t, mustItem(t, "sku-1", 1, "1").Validate())
	})

	t.Run("zero value item is invalid", func(t *testing.T) {
		var item order.Item
		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})

	t.Run("nil item is invalid", func(t *testing.T) {
		var item *order.Item
		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order with order date", func(t *testing.T) {
		id := kernel.NewUUID()
		before := time.Now().UTC()
		o, err := order.NewOrder(id, "customer-1", []*order.Item{mustItem(t, "sku-1", 1, "10")})
		after := time.Now().UTC()

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "customer-1", o.CustomerID())
		assert.Equal(t, order.Pending, o.Status())
		assert.False(t, o.OrderDate().Before(before))
		assert.False(t, o.OrderDate().After(after))
		assert.Nil(t, o.ProcessingStartedAt())
		assert.Nil(t, o.ShippedAt())
		assert.Nil(t, o.CompletedAt())
		assert.Nil(t, o.CancelledAt())
		assert.Nil(t, o.TrackingNumber())
		assert.Nil(t, o.CancellationReason())
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "customer-1", []*order.Item{mustItem(t, "sku-1", 1, "10")})
		require.Error(t, err)
	})

	t.Run("rejects empty customer id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", []*order.Item{mustItem(t, "sku-1", 1, "10")})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "customer-1", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unconstructed items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "customer-1", []*order.Item{{}})
		require.ErrorIs(t, err, order.ErrItemIsNotConstructed)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order is valid", func(t *testing.T) {
		require.NoError(t, newPendingOrder(t).Validate())
	})

	t.Run("zero value order is invalid", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order is invalid", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_TotalAmount(t *testing.T) {
	t.Run("sums quantity times unit price over items", func(t *testing.T) {
		o := newPendingOrder(t,
			mustItem(t, "sku-1", 2, "10"),
			mustItem(t, "sku-2", 3, "1.25"),
		)

		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("23.75")))
	})

	t.Run("single free item totals zero", func(t *testing.T) {
		o := newPendingOrder(t, mustItem(t, "sku-free", 5, "0"))
		assert.True(t, o.TotalAmount().Equal(decimal.Zero))
	})
}

func TestOrder_AssignTracking(t *testing.T) {
	t.Run("records tracking number", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.AssignTracking("T1"))
		require.NotNil(t, o.TrackingNumber())
		assert.Equal(t, "T1", *o.TrackingNumber())
	})

	t.Run("rejects empty tracking number", func(t *testing.T) {
		o := newPendingOrder(t)
		require.ErrorIs(t, o.AssignTracking(""), errs.ErrValueIsRequired)
		assert.Nil(t, o.TrackingNumber())
	})
}

func TestOrder_ApplyStatusTransition(t *testing.T) {
	eventTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("processing stamps processing started", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.ApplyStatusTransition(order.Processing, eventTime, ""))

		assert.Equal(t, order.Processing, o.Status())
		require.NotNil(t, o.ProcessingStartedAt())
		assert.Equal(t, eventTime, *o.ProcessingStartedAt())
		assert.Nil(t, o.ShippedAt())
		assert.Nil(t, o.CompletedAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("full lifecycle stamps each timestamp once", func(t *testing.T) {
		o := newPendingOrder(t)
		processedAt := eventTime
		shippedAt := eventTime.Add(time.Hour)
		completedAt := eventTime.Add(2 * time.Hour)

		require.NoError(t, o.ApplyStatusTransition(order.Processing, processedAt, ""))
		require.NoError(t, o.ApplyStatusTransition(order.Shipped, shippedAt, ""))
		require.NoError(t, o.ApplyStatusTransition(order.Completed, completedAt, ""))

		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, processedAt, *o.ProcessingStartedAt())
		assert.Equal(t, shippedAt, *o.ShippedAt())
		assert.Equal(t, completedAt, *o.CompletedAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("cancellation records reason and timestamp", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.ApplyStatusTransition(order.Cancelled, eventTime, "customer request"))

		assert.Equal(t, order.Cancelled, o.Status())
		require.NotNil(t, o.CancelledAt())
		assert.Equal(t, eventTime, *o.CancelledAt())
		require.NotNil(t, o.CancellationReason())
		assert.Equal(t, "customer request", *o.CancellationReason())
	})

	t.Run("cancellation without reason leaves reason nil", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.ApplyStatusTransition(order.Cancelled, eventTime, ""))

		assert.Nil(t, o.CancellationReason())
	})

	t.Run("rejected transition leaves order unmodified", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.ApplyStatusTransition(order.Completed, eventTime, "")

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.ProcessingStartedAt())
		assert.Nil(t, o.ShippedAt())
		assert.Nil(t, o.CompletedAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("cancelled order cannot move again", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.ApplyStatusTransition(order.Cancelled, eventTime, "out of stock"))

		require.ErrorIs(t, o.ApplyStatusTransition(order.Processing, eventTime, ""), order.ErrInvalidTransition)
		require.ErrorIs(t, o.ApplyStatusTransition(order.Cancelled, eventTime, ""), order.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.CompletedAt())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("rehydrates full state", func(t *testing.T) {
		id := kernel.NewUUID()
		orderDate := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
		shippedAt := orderDate.Add(time.Hour)
		tracking := "T1"

		o, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:             id,
			CustomerID:     "customer-1",
			OrderDate:      orderDate,
			Items:          []*order.Item{mustItem(t, "sku-1", 2, "10")},
			Status:         order.Shipped,
			TrackingNumber: &tracking,
			ShippedAt:      &shippedAt,
			Version:        3,
		})

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Shipped, o.Status())
		assert.Equal(t, orderDate, o.OrderDate())
		assert.Equal(t, shippedAt, *o.ShippedAt())
		assert.Equal(t, "T1", *o.TrackingNumber())
		assert.Equal(t, 3, o.Version())
		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("20")))
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:         kernel.NewUUID(),
			CustomerID: "customer-1",
			Items:      []*order.Item{mustItem(t, "sku-1", 1, "1")},
			Status:     order.Unknown,
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:         kernel.NewUUID(),
			CustomerID: "customer-1",
			Status:     order.Pending,
		})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

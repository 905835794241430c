package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/error7buddy/KiLagbe.Com/internal/common"
	"github.com/error7buddy/KiLagbe.Com/internal/logger"
	"github.com/error7buddy/KiLagbe.Com/internal/shifting/domain"
	"github.com/error7buddy/KiLagbe.Com/internal/shifting/repository"
)

func newTestService() *OrderService {
	return NewOrderService(repository.NewMemoryRepository(), logger.Discard())
}

func booking() domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		Name:         " Rahim ",
		Phone:        "01700000000",
		FromLocation: "Mirpur",
		ToLocation:   "Uttara",
		ShiftType:    "Home",
		Date:         "2025-01-10",
		FromFloor:    "3",
	}
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to pending and trims input", func(t *testing.T) {
		svc := newTestService()

		order, err := svc.Create(ctx, booking())
		require.NoError(t, err)
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, "Rahim", order.Name)
		assert.Equal(t, domain.StatusPending, order.Status)
		assert.Equal(t, "3", order.FromFloor)
		assert.Empty(t, order.ToFloor)
		assert.Empty(t, order.Message)
	})

	t.Run("names missing required fields", func(t *testing.T) {
		svc := newTestService()

		req := booking()
		req.Phone = "  "
		req.Date = ""

		_, err := svc.Create(ctx, req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrValidation))

		var verr *common.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"phone", "date"}, verr.Fields)

		orders, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestOrderService_Complete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	order, err := svc.Create(ctx, booking())
	require.NoError(t, err)

	done, err := svc.Complete(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)

	again, err := svc.Complete(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, again.Status)

	_, err = svc.Complete(ctx, "missing")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestOrderService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	first, err := svc.Create(ctx, booking())
	require.NoError(t, err)
	second, err := svc.Create(ctx, booking())
	require.NoError(t, err)

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	_, err = svc.Complete(ctx, first.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, first.ID))

	err = svc.Delete(ctx, first.ID)
	require.Error(t, err)
	assert.Equal(t, "Order not found", err.Error())

	orders, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

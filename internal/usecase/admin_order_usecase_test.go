package usecase

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatus_AnyToAny(t *testing.T) {
	//順方向の強制はないので、deliveredからpendingに戻すのも通る
	cases := []struct {
		from model.OrderStatus
		to   string
	}{
		{model.OrderStatusPending, "in_progress"},
		{model.OrderStatusInProgress, "finished"},
		{model.OrderStatusFinished, "delivered"},
		{model.OrderStatusDelivered, "pending"},
		{model.OrderStatusPending, "delivered"},
	}

	for _, tc := range cases {
		env := newOrderTestEnv(model.RoleOperator)
		ctx := context.Background()

		env.orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1, Status: tc.from}, nil)
		env.orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatus(tc.to)).Return(nil)
		env.audit.On("Create", mock.Anything, mock.Anything).Return(nil)
		env.orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

		out, err := env.uc.UpdateOrderStatus(ctx, testCallerID, 1, UpdateOrderStatusInput{Status: tc.to})
		require.NoError(t, err, "from=%s to=%s", tc.from, tc.to)
		assert.Equal(t, tc.to, out.Status)
		env.orders.AssertExpectations(t)
	}
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	env := newOrderTestEnv(model.RoleOperator)

	_, err := env.uc.UpdateOrderStatus(context.Background(), testCallerID, 1, UpdateOrderStatusInput{Status: "shipped"})
	assert.ErrorIs(t, err, ErrInvalidParams)

	//大文字も受けない
	_, err = env.uc.UpdateOrderStatus(context.Background(), testCallerID, 1, UpdateOrderStatusInput{Status: "PENDING"})
	assert.ErrorIs(t, err, ErrInvalidParams)

	env.txm.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestUpdateOrderStatus_WritesAuditLog(t *testing.T) {
	env := newOrderTestEnv(model.RoleOperator)
	ctx := context.Background()

	env.orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1, Status: model.OrderStatusPending}, nil)
	env.orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusFinished).Return(nil)
	env.orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	var logged model.AuditLog
	env.audit.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			logged = args.Get(1).(model.AuditLog)
		}).Return(nil)

	_, err := env.uc.UpdateOrderStatus(ctx, testCallerID, 1, UpdateOrderStatusInput{Status: "finished"})
	require.NoError(t, err)

	assert.Equal(t, testCallerID, logged.ActorUserID)
	assert.Equal(t, model.AuditActionUpdateOrderStatus, logged.Action)
	assert.Equal(t, model.AuditResourceOrder, logged.ResourceType)
	assert.Equal(t, int64(1), logged.ResourceID)
	assert.JSONEq(t, `{"status":"pending"}`, logged.BeforeJSON)
	assert.JSONEq(t, `{"status":"finished"}`, logged.AfterJSON)
}

func TestUpdateOrderStatus_AuditFailureAbortsUpdate(t *testing.T) {
	env := newOrderTestEnv(model.RoleOperator)
	ctx := context.Background()

	env.orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1, Status: model.OrderStatusPending}, nil)
	env.orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusFinished).Return(nil)
	//監査ログが書けないならステータス更新ごと失敗させる
	env.audit.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := env.uc.UpdateOrderStatus(ctx, testCallerID, 1, UpdateOrderStatusInput{Status: "finished"})
	require.Error(t, err)
	_, ok := AsRepositoryError(err)
	assert.True(t, ok)
}

func TestUpdateOrderStatus_OrderNotFound(t *testing.T) {
	env := newOrderTestEnv(model.RoleOperator)

	env.orders.On("FindByID", mock.Anything, int64(404)).Return(model.Order{}, repo.ErrNotFound)

	_, err := env.uc.UpdateOrderStatus(context.Background(), testCallerID, 404, UpdateOrderStatusInput{Status: "finished"})
	assert.ErrorIs(t, err, ErrNotFound)
	env.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteOrder_CascadesItems(t *testing.T) {
	env := newOrderTestEnv(model.RoleAdmin)
	ctx := context.Background()

	env.orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1}, nil)
	env.orderItems.On("DeleteByOrderID", mock.Anything, int64(1)).Return(nil)
	env.orders.On("Delete", mock.Anything, int64(1)).Return(nil)

	err := env.uc.DeleteOrder(ctx, testCallerID, 1)
	require.NoError(t, err)

	env.orderItems.AssertExpectations(t)
	env.orders.AssertExpectations(t)
	//削除で在庫は戻さない
	env.inventory.AssertNotCalled(t, "SetAvailable", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteOrder_RequiresAdmin(t *testing.T) {
	env := newOrderTestEnv(model.RoleOperator)

	err := env.uc.DeleteOrder(context.Background(), testCallerID, 1)
	assert.ErrorIs(t, err, ErrWithoutPermission)
	env.txm.AssertNotCalled(t, "WithinTx", mock.Anything)
}

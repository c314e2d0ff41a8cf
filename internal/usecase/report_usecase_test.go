package usecase

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReportTestEnv(role model.Role, now time.Time) (*ReportUsecase, *OrderRepoMock) {
	gate, _ := newGateWithRole(role)
	orders := new(OrderRepoMock)
	uc := NewReportUsecase(gate, orders)
	uc.now = func() time.Time { return now }
	return uc, orders
}

func TestReportPeriod_Window(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	from, to, ok := PeriodCurrentMonth.Window(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, now, to)

	from, to, ok = PeriodLast7Days.Window(now)
	require.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -7), from)
	assert.Equal(t, now, to)

	from, _, ok = PeriodLast90Days.Window(now)
	require.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -90), from)

	_, _, ok = ReportPeriod("last_year").Window(now)
	assert.False(t, ok)
}

func TestGetOrdersReport_Arithmetic(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	uc, orders := newReportTestEnv(model.RoleOperator, now)

	day := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	orders.On("ListNonDraftBetween", mock.Anything, mock.Anything, mock.Anything).Return([]model.Order{
		{ID: 1, TotalPrice: 100, TotalCostPrice: 60, CreatedAt: day},
		{ID: 2, TotalPrice: 200, TotalCostPrice: 120, CreatedAt: day},
	}, nil)

	out, err := uc.GetOrdersReport(context.Background(), testCallerID, "last_30_days")
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.OrdersCount)
	assert.Equal(t, int64(300), out.Revenue)
	assert.Equal(t, int64(120), out.Profit)
	assert.InDelta(t, 40.0, out.Margin, 0.0001)
	assert.InDelta(t, 150.0, out.AverageRevenuePerOrder, 0.0001)
}

func TestGetOrdersReport_GroupsByDayAscending(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	uc, orders := newReportTestEnv(model.RoleOperator, now)

	d10 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	d12 := time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)

	//repoはcreated_at昇順で返す
	orders.On("ListNonDraftBetween", mock.Anything, mock.Anything, mock.Anything).Return([]model.Order{
		{ID: 1, TotalPrice: 100, TotalCostPrice: 60, CreatedAt: d10},
		{ID: 2, TotalPrice: 50, TotalCostPrice: 30, CreatedAt: d10.Add(5 * time.Hour)},
		{ID: 3, TotalPrice: 200, TotalCostPrice: 120, CreatedAt: d12},
	}, nil)

	out, err := uc.GetOrdersReport(context.Background(), testCallerID, "last_7_days")
	require.NoError(t, err)

	require.Len(t, out.Orders, 2)
	assert.Equal(t, "2025-06-10", out.Orders[0].Date)
	assert.Equal(t, int64(150), out.Orders[0].TotalPrice)
	assert.Equal(t, int64(90), out.Orders[0].TotalCostPrice)
	assert.Equal(t, "2025-06-12", out.Orders[1].Date)
	assert.Equal(t, int64(200), out.Orders[1].TotalPrice)
}

func TestGetOrdersReport_EmptyWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	uc, orders := newReportTestEnv(model.RoleOperator, now)

	orders.On("ListNonDraftBetween", mock.Anything, mock.Anything, mock.Anything).Return([]model.Order{}, nil)

	out, err := uc.GetOrdersReport(context.Background(), testCallerID, "current_month")
	require.NoError(t, err)

	//0件でもゼロ除算せずに全部0で返す
	assert.Equal(t, int64(0), out.OrdersCount)
	assert.Equal(t, int64(0), out.Revenue)
	assert.Equal(t, float64(0), out.Margin)
	assert.Equal(t, float64(0), out.AverageRevenuePerOrder)
	assert.Empty(t, out.Orders)
}

func TestGetOrdersReport_UnknownPeriod(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	uc, orders := newReportTestEnv(model.RoleOperator, now)

	_, err := uc.GetOrdersReport(context.Background(), testCallerID, "yesterday")
	assert.ErrorIs(t, err, ErrInvalidParams)
	orders.AssertNotCalled(t, "ListNonDraftBetween", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrdersReport_RequiresResolvableCaller(t *testing.T) {
	gate := newGateWithoutUser()
	uc := NewReportUsecase(gate, new(OrderRepoMock))

	_, err := uc.GetOrdersReport(context.Background(), 99, "last_7_days")
	assert.ErrorIs(t, err, ErrWithoutPermission)
}

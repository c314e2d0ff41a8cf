package usecase

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ReportPeriod string

const (
	PeriodCurrentMonth ReportPeriod = "current_month"
	PeriodLast7Days    ReportPeriod = "last_7_days"
	PeriodLast30Days   ReportPeriod = "last_30_days"
	PeriodLast90Days   ReportPeriod = "last_90_days"
)

// 期間を[start, end]に解決する。current_monthは当月1日0時から現在まで。
func (p ReportPeriod) Window(now time.Time) (time.Time, time.Time, bool) {
	switch p {
	case PeriodCurrentMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, now, true
	case PeriodLast7Days:
		return now.AddDate(0, 0, -7), now, true
	case PeriodLast30Days:
		return now.AddDate(0, 0, -30), now, true
	case PeriodLast90Days:
		return now.AddDate(0, 0, -90), now, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

type DailyRevenue struct {
	Date           string `json:"date"`
	TotalPrice     int64  `json:"total_price"`
	TotalCostPrice int64  `json:"total_cost_price"`
}

type OrdersReportOutput struct {
	OrdersCount            int64          `json:"orders_count"`
	Revenue                int64          `json:"revenue"`
	Profit                 int64          `json:"profit"`
	Margin                 float64        `json:"margin"`
	AverageRevenuePerOrder float64        `json:"average_revenue_per_order"`
	Orders                 []DailyRevenue `json:"orders"`
}

type ReportUsecase struct {
	gate   *AccessGate
	orders repo.OrderRepository

	//テストで時刻を固定できるようにする
	now func() time.Time
}

func NewReportUsecase(gate *AccessGate, orders repo.OrderRepository) *ReportUsecase {
	return &ReportUsecase{gate: gate, orders: orders, now: time.Now}
}

// 売上レポート。draftの注文は呼び出し側の指定に関係なく常に除外する。
func (u *ReportUsecase) GetOrdersReport(ctx context.Context, callerID int64, period string) (OrdersReportOutput, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleOperator); err != nil {
		return OrdersReportOutput{}, err
	}

	from, to, ok := ReportPeriod(period).Window(u.now())
	if !ok {
		return OrdersReportOutput{}, ErrInvalidParams
	}

	orders, err := u.orders.ListNonDraftBetween(ctx, from, to)
	if err != nil {
		return OrdersReportOutput{}, NewRepositoryError(err)
	}

	var revenue int64 = 0
	var profit int64 = 0

	//日別の集計。repoがcreated_at昇順で返すので日付昇順になる
	daily := make([]DailyRevenue, 0)
	dayIndex := make(map[string]int)

	for _, o := range orders {
		revenue += o.TotalPrice
		profit += o.TotalPrice - o.TotalCostPrice

		day := o.CreatedAt.Format("2006-01-02")
		i, ok := dayIndex[day]
		if !ok {
			i = len(daily)
			dayIndex[day] = i
			daily = append(daily, DailyRevenue{Date: day})
		}
		daily[i].TotalPrice += o.TotalPrice
		daily[i].TotalCostPrice += o.TotalCostPrice
	}

	count := int64(len(orders))

	var margin float64 = 0
	if revenue > 0 {
		margin = float64(profit) / float64(revenue) * 100
	}

	var average float64 = 0
	if count > 0 {
		average = float64(revenue) / float64(count)
	}

	return OrdersReportOutput{
		OrdersCount:            count,
		Revenue:                revenue,
		Profit:                 profit,
		Margin:                 margin,
		AverageRevenuePerOrder: average,
		Orders:                 daily,
	}, nil
}

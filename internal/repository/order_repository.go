package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type OrderListFilter struct {
	Page         int
	ItemsPerPage int

	CustomerID *int64
	Draft      *bool
	From       *time.Time
	To         *time.Time

	//顧客名の部分一致
	CustomerName string
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error

	//レポート用。draft=falseのみ、created_at昇順で返す
	ListNonDraftBetween(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error)

	//顧客削除時に注文側の参照を外す（注文履歴は残す）
	ClearCustomer(ctx context.Context, customerID int64) error
}

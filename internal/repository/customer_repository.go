package repository

import (
	"context"

	"app/internal/domain/model"
)

type CustomerListQuery struct {
	Page  int
	Limit int
	Q     string
}

type CustomerRepository interface {
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	List(ctx context.Context, q CustomerListQuery) ([]model.Customer, int64, error)
	Delete(ctx context.Context, id int64) error
}

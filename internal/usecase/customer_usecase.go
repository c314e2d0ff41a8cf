package usecase

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CustomerUsecase struct {
	gate      *AccessGate
	tx        repo.TransactionManager
	customers repo.CustomerRepository
}

func NewCustomerUsecase(gate *AccessGate, tx repo.TransactionManager, customers repo.CustomerRepository) *CustomerUsecase {
	return &CustomerUsecase{gate: gate, tx: tx, customers: customers}
}

type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (u *CustomerUsecase) CreateCustomer(ctx context.Context, callerID int64, in CustomerInput) (model.Customer, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleAdmin); err != nil {
		return model.Customer{}, err
	}
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 255 {
		return model.Customer{}, ErrInvalidParams
	}

	c, err := u.customers.Create(ctx, model.Customer{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	})
	if err != nil {
		return model.Customer{}, NewRepositoryError(err)
	}
	return c, nil
}

func (u *CustomerUsecase) GetCustomer(ctx context.Context, callerID int64, id int64) (model.Customer, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleOperator); err != nil {
		return model.Customer{}, err
	}
	if id <= 0 {
		return model.Customer{}, ErrInvalidParams
	}

	c, err := u.customers.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, ErrNotFound
	}
	if err != nil {
		return model.Customer{}, NewRepositoryError(err)
	}
	return c, nil
}

type CustomerListOutput struct {
	Items []model.Customer `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (u *CustomerUsecase) ListCustomers(ctx context.Context, callerID int64, page int, limit int, q string) (CustomerListOutput, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleOperator); err != nil {
		return CustomerListOutput{}, err
	}
	if page < 1 || limit < 1 || limit > 100 {
		return CustomerListOutput{}, ErrInvalidParams
	}

	items, total, err := u.customers.List(ctx, repo.CustomerListQuery{Page: page, Limit: limit, Q: q})
	if err != nil {
		return CustomerListOutput{}, NewRepositoryError(err)
	}
	return CustomerListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// 顧客削除。注文側のcustomer_idはNULLにして注文履歴は残す。
func (u *CustomerUsecase) DeleteCustomer(ctx context.Context, callerID int64, id int64) error {
	if _, err := u.gate.Require(ctx, callerID, model.RoleAdmin); err != nil {
		return err
	}
	if id <= 0 {
		return ErrInvalidParams
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Customers().FindByID(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return NewRepositoryError(err)
		}

		if err := r.Orders().ClearCustomer(ctx, id); err != nil {
			return NewRepositoryError(err)
		}
		if err := r.Customers().Delete(ctx, id); err != nil {
			return NewRepositoryError(err)
		}
		return nil
	})
}

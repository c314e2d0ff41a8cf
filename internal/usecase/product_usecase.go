package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	gate     *AccessGate
	tx       repo.TransactionManager
	products repo.ProductRepository
}

func NewProductUsecase(
	gate *AccessGate,
	tx repo.TransactionManager,
	products repo.ProductRepository,
) *ProductUsecase {
	return &ProductUsecase{gate: gate, tx: tx, products: products}
}

type ListProductsInput struct {
	Page  int
	Limit int
	Q     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, callerID int64, in ListProductsInput) (ProductListOutput, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleOperator); err != nil {
		return ProductListOutput{}, err
	}

	if in.Page < 1 {
		return ProductListOutput{}, ErrInvalidParams
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, ErrInvalidParams
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, ErrInvalidParams
	}

	items, total, err := u.products.List(ctx, repo.ProductListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		Q:     in.Q,
	})
	if err != nil {
		return ProductListOutput{}, NewRepositoryError(err)
	}

	return ProductListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, callerID int64, id int64) (model.Product, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleOperator); err != nil {
		return model.Product{}, err
	}
	if id <= 0 {
		return model.Product{}, ErrInvalidParams
	}

	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, ErrNotFound
	}
	if err != nil {
		return model.Product{}, NewRepositoryError(err)
	}
	return p, nil
}

type ProductInput struct {
	Name              string  `json:"name"`
	Barcode           *string `json:"barcode"`
	Price             int64   `json:"price"`
	CostPrice         int64   `json:"cost_price"`
	AvailableQuantity int64   `json:"available_quantity"`
	CategoryID        *int64  `json:"category_id"`
	BrandID           *int64  `json:"brand_id"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 255 {
		return ErrInvalidParams
	}
	if in.Price < 0 || in.CostPrice < 0 {
		return ErrInvalidParams
	}
	return nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, callerID int64, in ProductInput) (model.Product, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleAdmin); err != nil {
		return model.Product{}, err
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	p, err := u.products.Create(ctx, model.Product{
		Name:              in.Name,
		Barcode:           in.Barcode,
		Price:             in.Price,
		CostPrice:         in.CostPrice,
		AvailableQuantity: in.AvailableQuantity,
		CategoryID:        in.CategoryID,
		BrandID:           in.BrandID,
	})
	if err != nil {
		//barcodeのunique違反など
		return model.Product{}, NewRepositoryError(err)
	}
	return p, nil
}

// 価格・名称などの更新。在庫はここでは触らない（SetStockで履歴付きで変える）。
// 既存注文のスナップショット価格はカタログを変えても変わらない。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, callerID int64, id int64, in ProductInput) (model.Product, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleAdmin); err != nil {
		return model.Product{}, err
	}
	if id <= 0 {
		return model.Product{}, ErrInvalidParams
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	err := u.products.Update(ctx, model.Product{
		ID:         id,
		Name:       in.Name,
		Barcode:    in.Barcode,
		Price:      in.Price,
		CostPrice:  in.CostPrice,
		CategoryID: in.CategoryID,
		BrandID:    in.BrandID,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, ErrNotFound
	}
	if err != nil {
		return model.Product{}, NewRepositoryError(err)
	}

	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, NewRepositoryError(err)
	}
	return p, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, callerID int64, id int64) error {
	if _, err := u.gate.Require(ctx, callerID, model.RoleAdmin); err != nil {
		return err
	}
	if id <= 0 {
		return ErrInvalidParams
	}

	err := u.products.SoftDelete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return NewRepositoryError(err)
	}
	return nil
}

type SetStockInput struct {
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
}

// 在庫の現在値を直接設定する。調整履歴と監査ログを同じトランザクションで残す。
func (u *ProductUsecase) SetStock(ctx context.Context, callerID int64, productID int64, in SetStockInput) error {
	caller, err := u.gate.Require(ctx, callerID, model.RoleAdmin)
	if err != nil {
		return err
	}
	if productID <= 0 {
		return ErrInvalidParams
	}
	if strings.TrimSpace(in.Reason) == "" {
		return ErrInvalidParams
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return NewRepositoryError(err)
		}

		if err := r.Inventory().SetAvailable(ctx, productID, in.Quantity); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return NewRepositoryError(err)
		}

		if err := r.Inventory().CreateAdjustment(ctx, model.StockAdjustment{
			ProductID:   productID,
			ActorUserID: caller.ID,
			Delta:       in.Quantity - p.AvailableQuantity,
			Reason:      in.Reason,
		}); err != nil {
			return NewRepositoryError(err)
		}

		//監査ログ（SET_STOCK）。調整と同じトランザクションで書く
		beforeJSON := fmt.Sprintf(`{"available_quantity":%d}`, p.AvailableQuantity)
		afterJSON := fmt.Sprintf(`{"available_quantity":%d}`, in.Quantity)
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  caller.ID,
			Action:       model.AuditActionSetStock,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   productID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewRepositoryError(err)
		}

		return nil
	})
}

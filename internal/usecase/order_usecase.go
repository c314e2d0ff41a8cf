package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	gate      *AccessGate
	tx        repo.TransactionManager
	customers repo.CustomerRepository
}

func NewOrderUsecase(
	gate *AccessGate,
	tx repo.TransactionManager,
	customers repo.CustomerRepository,
) *OrderUsecase {
	return &OrderUsecase{gate: gate, tx: tx, customers: customers}
}

type OrderItemInput struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	//手動で交渉した価格。nilならカタログ価格をそのまま請求する
	CustomPrice *int64 `json:"custom_price"`
	Obs         string `json:"obs"`
}

type CreateOrderInput struct {
	CustomerID *int64           `json:"customer_id"`
	Draft      bool             `json:"draft"`
	Obs        string           `json:"obs"`
	Items      []OrderItemInput `json:"items"`

	Zipcode      string `json:"zipcode"`
	City         string `json:"city"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	Complement   string `json:"complement"`
}

type OrderItemOutput struct {
	ProductID   *int64 `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
	CostPrice   int64  `json:"cost_price"`
	CustomPrice int64  `json:"custom_price"`
	Obs         string `json:"obs"`
}

type OrderOutput struct {
	ID             int64             `json:"id"`
	CustomerID     *int64            `json:"customer_id"`
	Status         string            `json:"status"`
	Draft          bool              `json:"draft"`
	TotalPrice     int64             `json:"total_price"`
	TotalCostPrice int64             `json:"total_cost_price"`
	Obs            string            `json:"obs"`
	Zipcode        string            `json:"zipcode"`
	City           string            `json:"city"`
	Street         string            `json:"street"`
	Neighborhood   string            `json:"neighborhood"`
	Complement     string            `json:"complement"`
	CreatedAt      time.Time         `json:"created_at"`
	Items          []OrderItemOutput `json:"items"`
}

func (u *OrderUsecase) CreateOrder(ctx context.Context, callerID int64, in CreateOrderInput) (OrderOutput, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleOperator); err != nil {
		return OrderOutput{}, err
	}

	if len(in.Items) == 0 {
		return OrderOutput{}, ErrInvalidParams
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			return OrderOutput{}, ErrInvalidParams
		}
		if it.CustomPrice != nil && *it.CustomPrice < 0 {
			return OrderOutput{}, ErrInvalidParams
		}
	}

	//顧客の存在確認（指定があるときだけ）。書き込み前に弾く
	if in.CustomerID != nil {
		if _, err := u.customers.FindByID(ctx, *in.CustomerID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return OrderOutput{}, ErrNotFound
			}
			return OrderOutput{}, NewRepositoryError(err)
		}
	}

	//同じ商品が複数行で来たら1行にまとめる（数量は合算、順序は初出順）
	merged := mergeItems(in.Items)

	var out OrderOutput

	//注文処理はトランザクション。途中で失敗したら在庫減算も明細も全部戻る
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カタログをまとめて1回で読む
		ids := make([]int64, 0, len(merged))
		for _, m := range merged {
			ids = append(ids, m.ProductID)
		}
		products, err := r.Products().FindByIDs(ctx, ids)
		if err != nil {
			return NewRepositoryError(err)
		}
		byID := make(map[int64]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		items := make([]model.OrderItem, 0, len(merged))
		var totalPrice int64 = 0
		var totalCostPrice int64 = 0

		for _, m := range merged {
			p, ok := byID[m.ProductID]
			if !ok {
				//1件でも見つからなければ全体を中断（部分適用を見せない）
				return ErrNotFound
			}

			//在庫減算。クランプなし（§在庫方針はInventoryRepository側に隔離）
			if err := r.Inventory().DecrementAvailable(ctx, p.ID, m.Quantity); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return ErrNotFound
				}
				return NewRepositoryError(err)
			}

			//販売時点の価格スナップショット
			customPrice := p.Price
			if m.CustomPrice != nil {
				customPrice = *m.CustomPrice
			}

			productID := p.ID
			items = append(items, model.OrderItem{
				ProductID:          &productID,
				Quantity:           m.Quantity,
				ProductPrice:       p.Price,
				ProductCostPrice:   p.CostPrice,
				CustomProductPrice: customPrice,
				Obs:                m.Obs,
			})

			totalPrice += customPrice * m.Quantity
			totalCostPrice += p.CostPrice * m.Quantity
		}

		// 注文作成
		now := time.Now()
		order := model.Order{
			CustomerID:     in.CustomerID,
			TotalPrice:     totalPrice,
			TotalCostPrice: totalCostPrice,
			Draft:          in.Draft,
			Status:         model.OrderStatusPending,
			Obs:            in.Obs,
			Zipcode:        in.Zipcode,
			City:           in.City,
			Street:         in.Street,
			Neighborhood:   in.Neighborhood,
			Complement:     in.Complement,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewRepositoryError(err)
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewRepositoryError(err)
		}

		order.ID = orderID
		out = toOrderOutput(order, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 同一商品の明細をまとめる。数量は合算、custom価格とobsは初出の行を採用する。
func mergeItems(items []OrderItemInput) []OrderItemInput {
	merged := make([]OrderItemInput, 0, len(items))
	index := make(map[int64]int, len(items))

	for _, it := range items {
		if i, ok := index[it.ProductID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(merged)
		merged = append(merged, it)
	}
	return merged
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			Price:       it.ProductPrice,
			CostPrice:   it.ProductCostPrice,
			CustomPrice: it.CustomProductPrice,
			Obs:         it.Obs,
		})
	}

	return OrderOutput{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		Status:         string(o.Status),
		Draft:          o.Draft,
		TotalPrice:     o.TotalPrice,
		TotalCostPrice: o.TotalCostPrice,
		Obs:            o.Obs,
		Zipcode:        o.Zipcode,
		City:           o.City,
		Street:         o.Street,
		Neighborhood:   o.Neighborhood,
		Complement:     o.Complement,
		CreatedAt:      o.CreatedAt,
		Items:          outItems,
	}
}

type ListOrdersInput struct {
	Page         int
	ItemsPerPage int

	CustomerID   *int64
	Draft        *bool
	From         *time.Time
	To           *time.Time
	CustomerName string
}

type OrderListOutput struct {
	Orders       []OrderOutput `json:"orders"`
	Total        int64         `json:"total"`
	Page         int           `json:"page"`
	ItemsPerPage int           `json:"items_per_page"`
}

type CustomerOutput struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// 明細ビュー。販売時点のスナップショットと現在のカタログ値を並べて返す。
// 商品が消えていたら current 側は null。
type OrderDetailItemOutput struct {
	ProductID        *int64 `json:"product_id"`
	Quantity         int64  `json:"quantity"`
	Price            int64  `json:"price"`
	CostPrice        int64  `json:"cost_price"`
	CustomPrice      int64  `json:"custom_price"`
	Obs              string `json:"obs"`
	CurrentPrice     *int64 `json:"current_price"`
	CurrentCostPrice *int64 `json:"current_cost_price"`
}

type OrderDetailOutput struct {
	ID             int64                   `json:"id"`
	Customer       *CustomerOutput         `json:"customer"`
	Status         string                  `json:"status"`
	Draft          bool                    `json:"draft"`
	TotalPrice     int64                   `json:"total_price"`
	TotalCostPrice int64                   `json:"total_cost_price"`
	Obs            string                  `json:"obs"`
	Zipcode        string                  `json:"zipcode"`
	City           string                  `json:"city"`
	Street         string                  `json:"street"`
	Neighborhood   string                  `json:"neighborhood"`
	Complement     string                  `json:"complement"`
	CreatedAt      time.Time               `json:"created_at"`
	Items          []OrderDetailItemOutput `json:"items"`
}

func (u *OrderUsecase) ListOrders(ctx context.Context, callerID int64, in ListOrdersInput) (OrderListOutput, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleOperator); err != nil {
		return OrderListOutput{}, err
	}

	if in.Page < 1 {
		return OrderListOutput{}, ErrInvalidParams
	}
	if in.ItemsPerPage < 1 || in.ItemsPerPage > 100 {
		return OrderListOutput{}, ErrInvalidParams
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().List(ctx, repo.OrderListFilter{
			Page:         in.Page,
			ItemsPerPage: in.ItemsPerPage,
			CustomerID:   in.CustomerID,
			Draft:        in.Draft,
			From:         in.From,
			To:           in.To,
			CustomerName: in.CustomerName,
		})
		if err != nil {
			return NewRepositoryError(err)
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o, nil))
		}

		out = OrderListOutput{
			Orders:       outs,
			Total:        total,
			Page:         in.Page,
			ItemsPerPage: in.ItemsPerPage,
		}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, callerID int64, orderID int64) (OrderDetailOutput, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleOperator); err != nil {
		return OrderDetailOutput{}, err
	}
	if orderID <= 0 {
		return OrderDetailOutput{}, ErrInvalidParams
	}

	var out OrderDetailOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return NewRepositoryError(err)
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewRepositoryError(err)
		}

		//スナップショットと見比べるために現在のカタログ値もまとめて読む
		ids := make([]int64, 0, len(items))
		for _, it := range items {
			if it.ProductID != nil {
				ids = append(ids, *it.ProductID)
			}
		}
		products, err := r.Products().FindByIDs(ctx, ids)
		if err != nil {
			return NewRepositoryError(err)
		}
		current := make(map[int64]model.Product, len(products))
		for _, p := range products {
			current[p.ID] = p
		}

		//顧客解決（削除済みならnull）
		var customer *CustomerOutput
		if o.CustomerID != nil {
			c, err := r.Customers().FindByID(ctx, *o.CustomerID)
			if err == nil {
				customer = &CustomerOutput{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
			} else if !errors.Is(err, repo.ErrNotFound) {
				return NewRepositoryError(err)
			}
		}

		outItems := make([]OrderDetailItemOutput, 0, len(items))
		for _, it := range items {
			view := OrderDetailItemOutput{
				ProductID:   it.ProductID,
				Quantity:    it.Quantity,
				Price:       it.ProductPrice,
				CostPrice:   it.ProductCostPrice,
				CustomPrice: it.CustomProductPrice,
				Obs:         it.Obs,
			}
			if it.ProductID != nil {
				if p, ok := current[*it.ProductID]; ok {
					price := p.Price
					costPrice := p.CostPrice
					view.CurrentPrice = &price
					view.CurrentCostPrice = &costPrice
				}
			}
			outItems = append(outItems, view)
		}

		out = OrderDetailOutput{
			ID:             o.ID,
			Customer:       customer,
			Status:         string(o.Status),
			Draft:          o.Draft,
			TotalPrice:     o.TotalPrice,
			TotalCostPrice: o.TotalCostPrice,
			Obs:            o.Obs,
			Zipcode:        o.Zipcode,
			City:           o.City,
			Street:         o.Street,
			Neighborhood:   o.Neighborhood,
			Complement:     o.Complement,
			CreatedAt:      o.CreatedAt,
			Items:          outItems,
		}
		return nil
	})

	if err != nil {
		return OrderDetailOutput{}, err
	}
	return out, nil
}

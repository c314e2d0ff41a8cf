package repository

import (
	"app/internal/domain/model"
	"context"
)

type InventoryRepository interface {
	// 在庫の現在値を設定
	SetAvailable(ctx context.Context, productID int64, newQuantity int64) error

	// 在庫減算。クランプしない（負になり得る）。
	// 減算はDB側の式で行い、read-modify-writeのロストアップデートを避ける。
	DecrementAvailable(ctx context.Context, productID int64, qty int64) error

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.StockAdjustment) error
}

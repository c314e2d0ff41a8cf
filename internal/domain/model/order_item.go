package model

import "time"

// 注文明細。価格は販売時点のスナップショットで、カタログが後から変わっても不変。
type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"not null;index" json:"order_id"`

	//商品が後で消えても明細行は残す
	ProductID *int64 `gorm:"index" json:"product_id"`

	Quantity int64 `gorm:"not null" json:"quantity"`

	//販売時点のカタログ価格（原価計算の基準）
	ProductPrice     int64 `gorm:"not null" json:"product_price"`
	ProductCostPrice int64 `gorm:"not null" json:"product_cost_price"`

	//実際に請求した価格（手動の値引き・上乗せがあればカタログ価格と異なる）
	CustomProductPrice int64 `gorm:"not null" json:"custom_product_price"`

	Obs string `gorm:"type:text" json:"obs"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID      int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string  `gorm:"type:varchar(255);not null" json:"name"`
	Barcode *string `gorm:"type:varchar(64);uniqueIndex" json:"barcode"`

	//販売価格と仕入価格（最小通貨単位の整数）
	Price     int64 `gorm:"not null" json:"price"`
	CostPrice int64 `gorm:"not null" json:"cost_price"`

	//在庫数。同時注文のレースで負になり得る（クランプしない）
	AvailableQuantity int64 `gorm:"not null" json:"available_quantity"`

	CategoryID *int64 `gorm:"index" json:"category_id"`
	BrandID    *int64 `gorm:"index" json:"brand_id"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

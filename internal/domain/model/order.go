package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusFinished   OrderStatus = "finished"
	OrderStatusDelivered  OrderStatus = "delivered"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusFinished, OrderStatusDelivered:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

type Order struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID *int64 `gorm:"index" json:"customer_id"`

	//合計は明細から計算して保存する（customPrice×qty / costPrice×qty の総和）
	TotalPrice     int64 `gorm:"not null" json:"total_price"`
	TotalCostPrice int64 `gorm:"not null" json:"total_cost_price"`

	//draft=trueは見積（売上レポートから常に除外）
	Draft  bool        `gorm:"not null;default:false;index" json:"draft"`
	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	Obs string `gorm:"type:text" json:"obs"`

	//配送先
	Zipcode      string `gorm:"type:varchar(20)" json:"zipcode"`
	City         string `gorm:"type:varchar(255)" json:"city"`
	Street       string `gorm:"type:varchar(255)" json:"street"`
	Neighborhood string `gorm:"type:varchar(255)" json:"neighborhood"`
	Complement   string `gorm:"type:varchar(255)" json:"complement"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

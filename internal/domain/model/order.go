package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 定義済みのステータスかどうか
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// delivered / cancelled は終端
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// 許可された遷移：
//
//	pending   → confirmed / cancelled
//	confirmed → shipped
//	shipped   → delivered
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	}
	return false
}

type Order struct {
	ID     int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64       `gorm:"not null;index" json:"user_id"`
	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	ShippingAddress string `gorm:"type:varchar(255);not null" json:"shipping_address"`
	ContactPhone    string `gorm:"type:varchar(30);not null" json:"contact_phone"`

	//作成時に確定し、以降はスタッフの編集以外で変わらない
	TotalAmount float64 `gorm:"not null" json:"total_amount"`

	CreatedAt time.Time  `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

package model

import (
	"errors"
	"time"
)

type OrderStatus string

const (
	OrderStatusOrder  OrderStatus = "ORDER"
	OrderStatusCancel OrderStatus = "CANCEL"
)

var (
	// 取消済み注文への再取消
	ErrOrderAlreadyCanceled = errors.New("order already canceled")
	// 明細が1件もない注文
	ErrEmptyOrder = errors.New("order must have at least one item")
)

// 注文。明細（OrderItem）の集約ルート。
// 合計金額はカラムとして持たず、常に明細から再計算する。
type Order struct {
	ID             int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	MemberID       int64       `gorm:"not null;index" json:"member_id"`
	OrderDate      time.Time   `gorm:"not null" json:"order_date"`
	Status         OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	IdempotencyKey string      `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`

	// 明細はorder_itemsテーブルで別管理（OrderItemRepository）
	Items []OrderItem `gorm:"-" json:"items"`
}

// NewOrder はORDER状態の注文を組み立てる。明細は挿入順を保つ。
func NewOrder(memberID int64, items []OrderItem, now time.Time) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	return Order{
		MemberID:  memberID,
		OrderDate: now,
		Status:    OrderStatusOrder,
		Items:     items,
	}, nil
}

// 注文全体の合計金額（明細の OrderPrice × Count の総和）
func (o *Order) TotalPrice() int64 {
	var total int64 = 0
	for _, it := range o.Items {
		total += it.TotalPrice()
	}
	return total
}

// Cancel はORDER→CANCELの遷移。CANCELは終端で、再取消はエラー。
// 在庫戻しは明細ごとに呼び出し側が一度だけ行う。
func (o *Order) Cancel() error {
	if o.Status == OrderStatusCancel {
		return ErrOrderAlreadyCanceled
	}
	o.Status = OrderStatusCancel
	return nil
}

package model

import "time"

// 注文明細。OrderPriceは注文時点の価格スナップショットで、
// 後から商品価格が変わっても再読み込みしない。
type OrderItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64     `gorm:"not null;index" json:"order_id"`
	ItemID     int64     `gorm:"not null;index" json:"item_id"`
	OrderPrice int64     `gorm:"not null" json:"order_price"`
	Count      int64     `gorm:"not null" json:"count"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// NewOrderItem は価格を確定し、数量ぶん商品の在庫を減らす。
// 在庫が足りなければ明細は作られない。
func NewOrderItem(item *Item, count int64) (OrderItem, error) {
	if count < 1 {
		return OrderItem{}, ErrInvalidCount
	}
	if err := item.RemoveStock(count); err != nil {
		return OrderItem{}, err
	}
	return OrderItem{
		ItemID:     item.ID,
		OrderPrice: item.Price,
		Count:      count,
	}, nil
}

// 明細の合計金額
func (oi OrderItem) TotalPrice() int64 {
	return oi.OrderPrice * oi.Count
}

// Cancel は数量ぶん在庫を戻す。
// 二重取消の防止はここでは行わない（Order側のステータス遷移で守る）。
func (oi OrderItem) Cancel(item *Item) error {
	return item.AddStock(oi.Count)
}

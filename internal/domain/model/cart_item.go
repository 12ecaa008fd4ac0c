package model

import "time"

// カート明細。(cart_id, item_id)は高々1行で、同じ商品を
// 追加したときは行を増やさず数量を加算する。
// 価格はここでは持たない。スナップショットは注文確定時に取る。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;uniqueIndex:uq_cart_items_cart_item" json:"cart_id"`
	ItemID    int64     `gorm:"not null;uniqueIndex:uq_cart_items_cart_item" json:"item_id"`
	Count     int64     `gorm:"not null" json:"count"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 既に入っている商品を追加したときの数量加算
func (ci *CartItem) AddCount(count int64) error {
	if count < 1 {
		return ErrInvalidCount
	}
	ci.Count += count
	return nil
}

// 数量の置き換え（加算ではない）
func (ci *CartItem) UpdateCount(count int64) error {
	if count < 1 {
		return ErrInvalidCount
	}
	ci.Count = count
	return nil
}

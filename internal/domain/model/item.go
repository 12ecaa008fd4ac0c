package model

import (
	"errors"
	"fmt"
	"time"
)

// 販売中か売り切れか。
// 在庫数とは独立したフィールドで、在庫0でも自動では切り替えない。
type ItemSellStatus string

const (
	ItemSellStatusSell    ItemSellStatus = "SELL"
	ItemSellStatusSoldOut ItemSellStatus = "SOLD_OUT"
)

// 数量が1未満
var ErrInvalidCount = errors.New("count must be >= 1")

// 在庫不足。どの商品が足りなかったかを呼び出し側へ返す。
type InsufficientStockError struct {
	ItemID    int64
	Stock     int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: item=%d stock=%d requested=%d", e.ItemID, e.Stock, e.Requested)
}

// 商品。StockNumberは0未満にならない。
// Priceは最小通貨単位の整数（円）。
type Item struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null;index" json:"name"`
	Price        int64          `gorm:"not null" json:"price"`
	Detail       string         `gorm:"type:text" json:"detail"`
	StockNumber  int64          `gorm:"not null" json:"stock_number"`
	SellStatus   ItemSellStatus `gorm:"type:varchar(20);not null;index" json:"sell_status"`
	RegisteredBy string         `gorm:"type:varchar(255);not null;index" json:"registered_by"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 注文数量ぶん在庫を減らす。足りなければ減らさずエラー。
func (i *Item) RemoveStock(count int64) error {
	if count < 1 {
		return ErrInvalidCount
	}
	if i.StockNumber < count {
		return &InsufficientStockError{ItemID: i.ID, Stock: i.StockNumber, Requested: count}
	}
	i.StockNumber -= count
	return nil
}

// キャンセル時に注文数量ぶん在庫を戻す。上限は設けない。
func (i *Item) AddStock(count int64) error {
	if count < 1 {
		return ErrInvalidCount
	}
	i.StockNumber += count
	return nil
}

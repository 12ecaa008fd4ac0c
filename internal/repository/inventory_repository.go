package repository

import (
	"app/internal/domain/model"
	"context"
)

// 在庫数の増減を約束。
// 減算は「足りるときだけ」を1文のUPDATEで行い、同時注文の直列化点になる。
type InventoryRepository interface {
	// 在庫が足りるときだけ減算。減らせたらtrue
	DecreaseStockIfEnough(ctx context.Context, itemID int64, count int64) (bool, error)

	// 在庫戻し（注文キャンセル）
	IncreaseStock(ctx context.Context, itemID int64, count int64) error

	// 在庫の現在値を設定（管理者）
	SetStock(ctx context.Context, itemID int64, newStock int64) error

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.StockAdjustment) error
}

package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫が足りるときだけ減らす。
// 条件付きUPDATE1文なので、同時に来た注文が同じ在庫を二重に取ることはない。
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, itemID int64, count int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ? AND stock_number >= ?", itemID, count).
		Update("stock_number", gorm.Expr("stock_number - ?", count))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（注文キャンセル）。上限チェックはしない。
func (r *InventoryGormRepository) IncreaseStock(ctx context.Context, itemID int64, count int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ?", itemID).
		Update("stock_number", gorm.Expr("stock_number + ?", count))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫の現在値を設定（管理者）
func (r *InventoryGormRepository) SetStock(ctx context.Context, itemID int64, newStock int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ?", itemID).
		Update("stock_number", newStock)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 調整履歴作成
func (r *InventoryGormRepository) CreateAdjustment(ctx context.Context, adjustment model.StockAdjustment) error {
	return r.db.WithContext(ctx).Create(&adjustment).Error
}

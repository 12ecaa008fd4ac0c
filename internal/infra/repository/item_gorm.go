package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewItemGormRepository(db *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{db: db}
}

// 指定された条件だけをANDで積み、1ページ分と総件数を返す。
// 総件数は同じ絞り込みに対して数える（絞り込み前の全件ではない）。
func (r *ItemGormRepository) Search(ctx context.Context, q repo.ItemSearchQuery) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Item{})

	//登録日の絞り込み（[下限, now]）
	if cutoff, ok := registeredWithinCutoff(q.RegisteredWithin, time.Now()); ok {
		tx = tx.Where("created_at >= ?", cutoff)
	}

	//販売ステータス
	if q.SellStatus != nil {
		tx = tx.Where("sell_status = ?", *q.SellStatus)
	}

	//テキスト検索（部分一致、大文字小文字は区別する）
	if kw := strings.TrimSpace(q.SearchQuery); kw != "" {
		like := "%" + kw + "%"
		switch q.SearchBy {
		case repo.SearchByName:
			tx = tx.Where("name LIKE ?", like)
		case repo.SearchByRegisteredBy:
			tx = tx.Where("registered_by LIKE ?", like)
		}
	}

	//価格下限
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Item{}, 0, err
	}

	//sort
	switch q.Sort {
	case "price_asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("price desc").Order("id desc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&items).Error; err != nil {
		return []model.Item{}, 0, err
	}

	return items, total, nil
}

// 月の幅はカレンダー基準（30日近似ではない）
func registeredWithinCutoff(w repo.RegisteredWithin, now time.Time) (time.Time, bool) {
	switch w {
	case repo.RegisteredWithin1Day:
		return now.AddDate(0, 0, -1), true
	case repo.RegisteredWithin1Week:
		return now.AddDate(0, 0, -7), true
	case repo.RegisteredWithin1Month:
		return now.AddDate(0, -1, 0), true
	case repo.RegisteredWithin6Months:
		return now.AddDate(0, -6, 0), true
	default:
		// all または未指定は絞り込みなし
		return time.Time{}, false
	}
}

// IDで商品を取得
func (r *ItemGormRepository) FindByID(ctx context.Context, itemID int64) (model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// 商品の作成
func (r *ItemGormRepository) Create(ctx context.Context, item model.Item) (model.Item, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// 商品の更新。在庫数はここでは触らない（InventoryRepository経由）。
func (r *ItemGormRepository) Update(ctx context.Context, item model.Item) error {
	res := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"name":        item.Name,
		"price":       item.Price,
		"detail":      item.Detail,
		"sell_status": item.SellStatus,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

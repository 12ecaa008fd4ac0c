package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 登録日の絞り込み幅。
// all: 全期間 / 1d: 1日 / 1w: 1週間 / 1m: 1か月 / 6m: 6か月
type RegisteredWithin string

const (
	RegisteredWithinAll     RegisteredWithin = "all"
	RegisteredWithin1Day    RegisteredWithin = "1d"
	RegisteredWithin1Week   RegisteredWithin = "1w"
	RegisteredWithin1Month  RegisteredWithin = "1m"
	RegisteredWithin6Months RegisteredWithin = "6m"
)

// 検索対象のフィールド
const (
	SearchByName         = "name"
	SearchByRegisteredBy = "registered_by"
)

// 商品検索の条件。指定された条件だけをANDで合成する。
// 未指定（ゼロ値/nil）の条件は絞り込みに使わない。
type ItemSearchQuery struct {
	RegisteredWithin RegisteredWithin
	SellStatus       *model.ItemSellStatus
	SearchBy         string // name / registered_by
	SearchQuery      string // 部分一致（大文字小文字は区別する）
	MinPrice         *int64
	Sort             string // "" / new / price_asc / price_desc
	Page             int    // 1始まり
	Limit            int
}

// 商品の永続化（保存・取得・検索）だけを約束。
// Searchは読み取り専用で、商品を一切変更しない。
type ItemRepository interface {
	// 条件に合う1ページ分と、同じ絞り込みでの総件数を返す
	Search(ctx context.Context, q ItemSearchQuery) ([]model.Item, int64, error)
	FindByID(ctx context.Context, itemID int64) (model.Item, error)

	Create(ctx context.Context, item model.Item) (model.Item, error)
	Update(ctx context.Context, item model.Item) error
}

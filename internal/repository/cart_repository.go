package repository

import (
	"app/internal/domain/model"
	"context"
)

type CartRepository interface {
	// 会員のカートを取得し、無ければ作成。同時アクセスでも1会員1カート
	GetOrCreateByMemberID(ctx context.Context, memberID int64) (model.Cart, error)
	FindByMemberID(ctx context.Context, memberID int64) (model.Cart, error)
	// カートの明細を全削除（注文確定後）
	Clear(ctx context.Context, cartID int64) error
}

package repository

import (
	"app/internal/domain/model"
	"context"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// 同一商品は数量加算、無ければ新規作成
	UpsertByCartAndItem(ctx context.Context, cartID int64, itemID int64, addCount int64) error
	// 数量の置き換え
	UpdateCount(ctx context.Context, cartItemID int64, count int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	IsOwnedByMember(ctx context.Context, cartItemID int64, memberID int64) (bool, error)
}

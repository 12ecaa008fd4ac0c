package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByMemberID(ctx context.Context, memberID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	// 現在値がfromのときだけtoへ遷移する条件付きUPDATE。遷移できたらtrue。
	// CANCELの二重適用はここで止まる
	UpdateStatusIfCurrent(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) (bool, error)

	//同じキーなら同じ注文を返すための検索
	FindByIdempotencyKey(ctx context.Context, memberID int64, key string) (model.Order, bool, error)
}

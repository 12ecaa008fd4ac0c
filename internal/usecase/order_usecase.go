package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

// 注文したい(商品, 数量)のペア
type OrderLineInput struct {
	ItemID int64
	Count  int64
}

type PlaceOrderInput struct {
	Lines          []OrderLineInput
	IdempotencyKey string
}

type OrderItemOutput struct {
	ItemID     int64 `json:"item_id"`
	OrderPrice int64 `json:"order_price"`
	Count      int64 `json:"count"`
	TotalPrice int64 `json:"total_price"`
}

type OrderOutput struct {
	ID         int64             `json:"id"`
	MemberID   int64             `json:"member_id"`
	Status     string            `json:"status"`
	OrderDate  time.Time         `json:"order_date"`
	TotalPrice int64             `json:"total_price"`
	Items      []OrderItemOutput `json:"items"`
}

// PlaceOrder は(商品, 数量)の一覧から注文を作る。
// 全行の在庫減算と明細作成が1トランザクションで、
// 1行でも在庫不足なら注文は作られず減算も残らない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, memberID int64, in PlaceOrderInput) (OrderOutput, error) {
	if memberID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Lines) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order items required")
	}
	for _, line := range in.Lines {
		if line.ItemID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
		}
		if line.Count < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid count")
		}
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err := u.placeLines(ctx, r, memberID, in.Lines, key)
		if err != nil {
			return err
		}
		out = created
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// PlaceOrderFromCart はカートの全明細を注文へ変換する。
// 確定に成功したらカートを空にする。
func (u *OrderUsecase) PlaceOrderFromCart(ctx context.Context, memberID int64, idempotencyKey string) (OrderOutput, error) {
	if memberID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	key := strings.TrimSpace(idempotencyKey)
	if key == "" || len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByMemberID(ctx, memberID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		lines := make([]OrderLineInput, 0, len(cartItems))
		for _, ci := range cartItems {
			lines = append(lines, OrderLineInput{ItemID: ci.ItemID, Count: ci.Count})
		}

		created, err := u.placeLines(ctx, r, memberID, lines, key)
		if err != nil {
			return err
		}

		//確定できたのでカートを空にする（再注文防止）
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = created
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// placeLines はトランザクションの中で呼ぶ。
// 行ごとに「価格スナップショット→条件付き在庫減算」を行い、注文＋明細を保存する。
func (u *OrderUsecase) placeLines(ctx context.Context, r repo.TxRepos, memberID int64, lines []OrderLineInput, key string) (OrderOutput, error) {
	// 同じキーなら同じ注文を返す
	existing, found, err := r.Orders().FindByIdempotencyKey(ctx, memberID, key)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if found {
		items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return toOrderOutput(existing, items), nil
	}

	now := time.Now()
	orderItems := make([]model.OrderItem, 0, len(lines))

	for _, line := range lines {
		item, err := r.Items().FindByID(ctx, line.ItemID)
		if err == repo.ErrNotFound {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "item not found")
		}
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細作成。価格はこの時点の値で確定し、読み込んだ在庫に対して検証する
		oi, err := model.NewOrderItem(&item, line.Count)
		if err != nil {
			return OrderOutput{}, err
		}
		oi.CreatedAt = now

		//本番の減算は条件付きUPDATE。同時注文に負けたらここでfalse
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.ItemID, line.Count)
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			return OrderOutput{}, &model.InsufficientStockError{
				ItemID:    line.ItemID,
				Stock:     item.StockNumber,
				Requested: line.Count,
			}
		}

		orderItems = append(orderItems, oi)
	}

	order, err := model.NewOrder(memberID, orderItems, now)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order items required")
	}
	order.IdempotencyKey = key
	order.CreatedAt = now
	order.UpdatedAt = now

	orderID, err := r.Orders().Create(ctx, order)
	if err != nil {
		//同時に同じキーが入った場合はもう一度検索して同じ結果を返す
		ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, memberID, key)
		if err2 == nil && found2 {
			items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
			if err3 != nil {
				return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
			}
			return toOrderOutput(ex2, items2), nil
		}
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "idempotency conflict")
	}

	if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order.ID = orderID
	return toOrderOutput(order, orderItems), nil
}

// CancelOrder はORDER→CANCELの遷移と明細ごとの在庫戻しを1トランザクションで行う。
// すでにCANCELなら在庫は戻さずエラーを返す（二重戻し防止）。
func (u *OrderUsecase) CancelOrder(ctx context.Context, memberID int64, orderID int64) (OrderOutput, error) {
	if memberID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if order.MemberID != memberID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		//集約側のガード。読んだ時点でCANCEL済みならここで止まる
		if err := order.Cancel(); err != nil {
			return err
		}

		//本番の遷移は条件付きUPDATE。同時キャンセルに負けたらここで0行になり、
		//在庫戻しには進まない
		ok, err := r.Orders().UpdateStatusIfCurrent(ctx, orderID, model.OrderStatusOrder, model.OrderStatusCancel)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			return model.ErrOrderAlreadyCanceled
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細ごとに一度だけ在庫を戻す
		for _, it := range items {
			if err := r.Inventory().IncreaseStock(ctx, it.ItemID, it.Count); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		out = toOrderOutput(order, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, memberID int64) ([]OrderOutput, error) {
	if memberID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまず固定で取る
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByMemberID(ctx, memberID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, memberID int64, orderID int64) (OrderOutput, error) {
	if memberID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.MemberID != memberID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 合計はカラムではなく明細から毎回計算する
func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	o.Items = items

	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ItemID:     it.ItemID,
			OrderPrice: it.OrderPrice,
			Count:      it.Count,
			TotalPrice: it.TotalPrice(),
		})
	}

	return OrderOutput{
		ID:         o.ID,
		MemberID:   o.MemberID,
		Status:     string(o.Status),
		OrderDate:  o.OrderDate,
		TotalPrice: o.TotalPrice(),
		Items:      outItems,
	}
}

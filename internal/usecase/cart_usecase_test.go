package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type cartTestDeps struct {
	carts     *CartRepoMock
	cartItems *CartItemRepoMock
	items     *ItemRepoMock
	uc        *usecase.CartUsecase
}

func newCartTestDeps() *cartTestDeps {
	d := &cartTestDeps{
		carts:     &CartRepoMock{},
		cartItems: &CartItemRepoMock{},
		items:     &ItemRepoMock{},
	}
	d.uc = usecase.NewCartUsecase(d.carts, d.cartItems, d.items)
	return d
}

func TestCartUsecase_AddToCart_NewItem(t *testing.T) {
	d := newCartTestDeps()
	ctx := context.Background()

	d.carts.On("GetOrCreateByMemberID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 3, MemberID: 1}, nil)
	d.items.On("FindByID", mock.Anything, int64(10)).
		Return(model.Item{ID: 10, Name: "gadget", Price: 1500, StockNumber: 8}, nil)
	// 1回目：在庫チェック用（空）、2回目：レスポンス用
	d.cartItems.On("ListByCartID", mock.Anything, int64(3)).
		Return([]model.CartItem{}, nil).Once()
	d.cartItems.On("UpsertByCartAndItem", mock.Anything, int64(3), int64(10), int64(2)).
		Return(nil)
	d.cartItems.On("ListByCartID", mock.Anything, int64(3)).
		Return([]model.CartItem{{ID: 30, CartID: 3, ItemID: 10, Count: 2}}, nil)

	out, err := d.uc.AddToCart(ctx, 1, usecase.AddCartInput{ItemID: 10, Count: 2})

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.Items[0].Count)
	assert.Equal(t, int64(3000), out.Total)
}

// 同一商品の追加は行を増やさず数量を加算する
func TestCartUsecase_AddToCart_MergesSameItem(t *testing.T) {
	d := newCartTestDeps()
	ctx := context.Background()

	d.carts.On("GetOrCreateByMemberID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 3, MemberID: 1}, nil)
	d.items.On("FindByID", mock.Anything, int64(10)).
		Return(model.Item{ID: 10, Name: "gadget", Price: 1500, StockNumber: 8}, nil)
	d.cartItems.On("ListByCartID", mock.Anything, int64(3)).
		Return([]model.CartItem{{ID: 30, CartID: 3, ItemID: 10, Count: 2}}, nil).Once()
	d.cartItems.On("UpsertByCartAndItem", mock.Anything, int64(3), int64(10), int64(3)).
		Return(nil)
	d.cartItems.On("ListByCartID", mock.Anything, int64(3)).
		Return([]model.CartItem{{ID: 30, CartID: 3, ItemID: 10, Count: 5}}, nil)

	out, err := d.uc.AddToCart(ctx, 1, usecase.AddCartInput{ItemID: 10, Count: 3})

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	// a + b
	assert.Equal(t, int64(5), out.Items[0].Count)
}

func TestCartUsecase_AddToCart_StockExceeded(t *testing.T) {
	d := newCartTestDeps()
	ctx := context.Background()

	d.carts.On("GetOrCreateByMemberID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 3, MemberID: 1}, nil)
	d.items.On("FindByID", mock.Anything, int64(10)).
		Return(model.Item{ID: 10, Price: 1500, StockNumber: 4}, nil)
	d.cartItems.On("ListByCartID", mock.Anything, int64(3)).
		Return([]model.CartItem{{ID: 30, CartID: 3, ItemID: 10, Count: 2}}, nil)

	// 2 + 3 > 4
	_, err := d.uc.AddToCart(ctx, 1, usecase.AddCartInput{ItemID: 10, Count: 3})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	d.cartItems.AssertNotCalled(t, "UpsertByCartAndItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_Validation(t *testing.T) {
	d := newCartTestDeps()
	ctx := context.Background()

	_, err := d.uc.AddToCart(ctx, 1, usecase.AddCartInput{ItemID: 10, Count: 0})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

// UpdateCartItemは加算ではなく置き換え
func TestCartUsecase_UpdateCartItem_ReplacesCount(t *testing.T) {
	d := newCartTestDeps()
	ctx := context.Background()

	d.cartItems.On("IsOwnedByMember", mock.Anything, int64(30), int64(1)).
		Return(true, nil)
	d.cartItems.On("FindByID", mock.Anything, int64(30)).
		Return(model.CartItem{ID: 30, CartID: 3, ItemID: 10, Count: 5}, nil)
	d.items.On("FindByID", mock.Anything, int64(10)).
		Return(model.Item{ID: 10, Name: "gadget", Price: 1500, StockNumber: 8}, nil)
	d.cartItems.On("UpdateCount", mock.Anything, int64(30), int64(2)).
		Return(nil)
	d.cartItems.On("ListByCartID", mock.Anything, int64(3)).
		Return([]model.CartItem{{ID: 30, CartID: 3, ItemID: 10, Count: 2}}, nil)

	out, err := d.uc.UpdateCartItem(ctx, 1, 30, usecase.UpdateCartItemInput{Count: 2})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), out.Items[0].Count)
	d.cartItems.AssertCalled(t, "UpdateCount", mock.Anything, int64(30), int64(2))
}

func TestCartUsecase_UpdateCartItem_NotOwned(t *testing.T) {
	d := newCartTestDeps()
	ctx := context.Background()

	d.cartItems.On("IsOwnedByMember", mock.Anything, int64(30), int64(1)).
		Return(false, nil)

	_, err := d.uc.UpdateCartItem(ctx, 1, 30, usecase.UpdateCartItemInput{Count: 2})

	// 他人の明細は存在しない扱い
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	d.cartItems.AssertNotCalled(t, "UpdateCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_GetCart_ItemLookup(t *testing.T) {
	t.Run("消えた商品の明細だけ表示から外す", func(t *testing.T) {
		d := newCartTestDeps()
		ctx := context.Background()

		d.carts.On("GetOrCreateByMemberID", mock.Anything, int64(1)).
			Return(model.Cart{ID: 3, MemberID: 1}, nil)
		d.cartItems.On("ListByCartID", mock.Anything, int64(3)).
			Return([]model.CartItem{
				{ID: 30, CartID: 3, ItemID: 10, Count: 2},
				{ID: 31, CartID: 3, ItemID: 11, Count: 1},
			}, nil)
		d.items.On("FindByID", mock.Anything, int64(10)).
			Return(model.Item{ID: 10, Name: "gadget", Price: 1500}, nil)
		d.items.On("FindByID", mock.Anything, int64(11)).
			Return(model.Item{}, repo.ErrNotFound)

		out, err := d.uc.GetCart(ctx, 1)

		assert.NoError(t, err)
		assert.Len(t, out.Items, 1)
		assert.Equal(t, int64(3000), out.Total)
	})

	t.Run("DBエラーは握りつぶさず500", func(t *testing.T) {
		d := newCartTestDeps()
		ctx := context.Background()

		d.carts.On("GetOrCreateByMemberID", mock.Anything, int64(1)).
			Return(model.Cart{ID: 3, MemberID: 1}, nil)
		d.cartItems.On("ListByCartID", mock.Anything, int64(3)).
			Return([]model.CartItem{{ID: 30, CartID: 3, ItemID: 10, Count: 2}}, nil)
		d.items.On("FindByID", mock.Anything, int64(10)).
			Return(model.Item{}, errors.New("connection reset"))

		_, err := d.uc.GetCart(ctx, 1)

		he, ok := usecase.AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusInternalServerError, he.Status)
	})
}

func TestCartUsecase_DeleteCartItem(t *testing.T) {
	d := newCartTestDeps()
	ctx := context.Background()

	d.cartItems.On("IsOwnedByMember", mock.Anything, int64(30), int64(1)).
		Return(true, nil)
	d.cartItems.On("DeleteByID", mock.Anything, int64(30)).Return(nil)
	d.carts.On("FindByMemberID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 3, MemberID: 1}, nil)
	d.cartItems.On("ListByCartID", mock.Anything, int64(3)).
		Return([]model.CartItem{}, nil)

	out, err := d.uc.DeleteCartItem(ctx, 1, 30)

	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
}

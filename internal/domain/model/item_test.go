package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItem_RemoveStock(t *testing.T) {
	t.Run("在庫が足りるなら数量ぶん減る", func(t *testing.T) {
		item := Item{ID: 1, StockNumber: 10}

		err := item.RemoveStock(3)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), item.StockNumber)
	})

	t.Run("在庫ちょうどなら0になる", func(t *testing.T) {
		item := Item{ID: 1, StockNumber: 5}

		err := item.RemoveStock(5)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), item.StockNumber)
	})

	t.Run("在庫不足なら減らさずエラー", func(t *testing.T) {
		item := Item{ID: 42, StockNumber: 2}

		err := item.RemoveStock(3)

		var stockErr *InsufficientStockError
		assert.True(t, errors.As(err, &stockErr))
		assert.Equal(t, int64(42), stockErr.ItemID)
		assert.Equal(t, int64(2), stockErr.Stock)
		assert.Equal(t, int64(3), stockErr.Requested)
		// 部分的な減算は起きない
		assert.Equal(t, int64(2), item.StockNumber)
	})

	t.Run("0以下の数量は拒否", func(t *testing.T) {
		item := Item{ID: 1, StockNumber: 10}

		assert.ErrorIs(t, item.RemoveStock(0), ErrInvalidCount)
		assert.ErrorIs(t, item.RemoveStock(-1), ErrInvalidCount)
		assert.Equal(t, int64(10), item.StockNumber)
	})
}

func TestItem_AddStock(t *testing.T) {
	t.Run("数量ぶん増える", func(t *testing.T) {
		item := Item{ID: 1, StockNumber: 7}

		err := item.AddStock(3)

		assert.NoError(t, err)
		assert.Equal(t, int64(10), item.StockNumber)
	})

	t.Run("0以下の数量は拒否", func(t *testing.T) {
		item := Item{ID: 1, StockNumber: 7}

		assert.ErrorIs(t, item.AddStock(0), ErrInvalidCount)
		assert.Equal(t, int64(7), item.StockNumber)
	})
}

// 減算と戻しを繰り返しても在庫が負にならないこと
func TestItem_StockNeverNegative(t *testing.T) {
	item := Item{ID: 1, StockNumber: 3}

	assert.NoError(t, item.RemoveStock(2))
	assert.Error(t, item.RemoveStock(2)) // 残り1に対して2は不可
	assert.NoError(t, item.RemoveStock(1))
	assert.Error(t, item.RemoveStock(1)) // 残り0に対して1は不可
	assert.Equal(t, int64(0), item.StockNumber)

	assert.NoError(t, item.AddStock(2))
	assert.Equal(t, int64(2), item.StockNumber)
}

package model

import "time"

// カート。1会員につき1つ（member_idにユニーク制約）。
// 最初の商品追加時に遅延作成し、以後削除しない。
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MemberID  int64     `gorm:"not null;uniqueIndex" json:"member_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

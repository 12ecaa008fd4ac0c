package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// 会員が見つかりませんを統一
var ErrMemberNotFound = errors.New("member not found")

type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	FindByID(ctx context.Context, memberID int64) (*model.Member, error)
	FindByEmail(ctx context.Context, email string) (*model.Member, error)
	Update(ctx context.Context, member *model.Member) error
}

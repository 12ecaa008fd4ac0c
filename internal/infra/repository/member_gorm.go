package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type MemberGormRepository struct {
	db *gorm.DB
}

// DI
func NewMemberGormRepository(db *gorm.DB) *MemberGormRepository {
	return &MemberGormRepository{db: db}
}

func (r *MemberGormRepository) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *MemberGormRepository) FindByID(ctx context.Context, memberID int64) (*model.Member, error) {
	var m model.Member
	err := r.db.WithContext(ctx).First(&m, memberID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberGormRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	var m model.Member
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberGormRepository) Update(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

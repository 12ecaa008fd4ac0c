package auth_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type memberRepoMock struct{ mock.Mock }

func (m *memberRepoMock) Create(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *memberRepoMock) FindByID(ctx context.Context, memberID int64) (*model.Member, error) {
	args := m.Called(ctx, memberID)
	member, _ := args.Get(0).(*model.Member)
	return member, args.Error(1)
}

func (m *memberRepoMock) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	args := m.Called(ctx, email)
	member, _ := args.Get(0).(*model.Member)
	return member, args.Error(1)
}

func (m *memberRepoMock) Update(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type hasherStub struct{}

func (h *hasherStub) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type verifierStub struct{ ok bool }

func (v *verifierStub) Verify(plain string, hashed string) bool { return v.ok }

type issuerStub struct{}

func (i *issuerStub) Issue(memberID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return "signed-token", now.Add(15 * time.Minute), nil
}

func TestRegisterMemberUsecase(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newUC := func(repoMock *memberRepoMock) *auth.RegisterMemberUsecase {
		return auth.NewRegisterMemberUsecase(repoMock, &hasherStub{}, &fixedClock{t: now})
	}

	t.Run("正常登録でUSER/activeの会員ができる", func(t *testing.T) {
		repoMock := &memberRepoMock{}
		repoMock.On("FindByEmail", mock.Anything, "taro@example.com").
			Return(nil, repository.ErrMemberNotFound)
		repoMock.On("Create", mock.Anything, mock.MatchedBy(func(m *model.Member) bool {
			return m.Email == "taro@example.com" &&
				m.Role == model.RoleUser &&
				m.IsActive &&
				m.PasswordHash == "hashed:correct-horse-battery"
		})).Return(nil)

		out, err := newUC(repoMock).Execute(context.Background(), auth.RegisterMemberInput{
			Email:    "taro@example.com",
			Password: "correct-horse-battery",
		})

		assert.NoError(t, err)
		assert.Equal(t, "taro@example.com", out.Member.Email)
		// hashは返さない
		assert.Empty(t, out.Member.PasswordHash)
	})

	t.Run("emailの形式不正", func(t *testing.T) {
		_, err := newUC(&memberRepoMock{}).Execute(context.Background(), auth.RegisterMemberInput{
			Email:    "not-an-email",
			Password: "correct-horse-battery",
		})

		assert.ErrorIs(t, err, auth.ErrInvalidEmailFormat)
	})

	t.Run("短すぎるパスワード", func(t *testing.T) {
		_, err := newUC(&memberRepoMock{}).Execute(context.Background(), auth.RegisterMemberInput{
			Email:    "taro@example.com",
			Password: "short",
		})

		assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
	})

	t.Run("email重複", func(t *testing.T) {
		repoMock := &memberRepoMock{}
		repoMock.On("FindByEmail", mock.Anything, "taro@example.com").
			Return(&model.Member{ID: 1, Email: "taro@example.com"}, nil)

		_, err := newUC(repoMock).Execute(context.Background(), auth.RegisterMemberInput{
			Email:    "taro@example.com",
			Password: "correct-horse-battery",
		})

		assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
		repoMock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLoginUsecase(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("成功でtokenと最終ログイン更新", func(t *testing.T) {
		repoMock := &memberRepoMock{}
		repoMock.On("FindByEmail", mock.Anything, "taro@example.com").
			Return(&model.Member{ID: 1, Email: "taro@example.com", PasswordHash: "h", IsActive: true, Role: model.RoleUser}, nil)
		repoMock.On("Update", mock.Anything, mock.MatchedBy(func(m *model.Member) bool {
			return m.LastLoginAt != nil && m.LastLoginAt.Equal(now)
		})).Return(nil)

		uc := auth.NewLoginUsecase(repoMock, &verifierStub{ok: true}, &issuerStub{}, &fixedClock{t: now})

		out, err := uc.Execute(context.Background(), auth.LoginInput{
			Email:    "taro@example.com",
			Password: "correct-horse-battery",
		})

		assert.NoError(t, err)
		assert.Equal(t, "signed-token", out.Token.AccessToken)
		assert.Equal(t, 900, out.Token.ExpiresIn)
		assert.Empty(t, out.Member.PasswordHash)
	})

	t.Run("未登録emailはInvalidCredentials", func(t *testing.T) {
		repoMock := &memberRepoMock{}
		repoMock.On("FindByEmail", mock.Anything, "nobody@example.com").
			Return(nil, repository.ErrMemberNotFound)

		uc := auth.NewLoginUsecase(repoMock, &verifierStub{ok: true}, &issuerStub{}, &fixedClock{t: now})

		_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "nobody@example.com", Password: "x"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("パスワード不一致はInvalidCredentials", func(t *testing.T) {
		repoMock := &memberRepoMock{}
		repoMock.On("FindByEmail", mock.Anything, "taro@example.com").
			Return(&model.Member{ID: 1, PasswordHash: "h", IsActive: true}, nil)

		uc := auth.NewLoginUsecase(repoMock, &verifierStub{ok: false}, &issuerStub{}, &fixedClock{t: now})

		_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "taro@example.com", Password: "wrong"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("停止会員はForbidden相当", func(t *testing.T) {
		repoMock := &memberRepoMock{}
		repoMock.On("FindByEmail", mock.Anything, "taro@example.com").
			Return(&model.Member{ID: 1, PasswordHash: "h", IsActive: false}, nil)

		uc := auth.NewLoginUsecase(repoMock, &verifierStub{ok: true}, &issuerStub{}, &fixedClock{t: now})

		_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "taro@example.com", Password: "x"})

		assert.ErrorIs(t, err, auth.ErrMemberInactive)
	})
}

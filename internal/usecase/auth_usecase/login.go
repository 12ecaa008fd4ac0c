package auth

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

// token 形
type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Member model.Member   `json:"member"`
	Token  JwtAccessToken `json:"token"`
}

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// 停止済み会員
var ErrMemberInactive = errors.New("member is inactive")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(memberID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	memberRepo repository.MemberRepository
	verifier   PasswordVerifier
	issuer     AccessTokenIssuer
	clock      Clock
}

func NewLoginUsecase(
	memberRepo repository.MemberRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		memberRepo: memberRepo,
		verifier:   verifier,
		issuer:     issuer,
		clock:      clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	//emailで会員取得
	member, err := u.memberRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//停止会員はログイン不可
	if !member.IsActive {
		return out, ErrMemberInactive
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, member.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//AccessToken発行
	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.Issue(member.ID, member.Role, now)
	if err != nil {
		return out, err
	}

	//最終ログイン時刻更新
	member.LastLoginAt = &now
	if err := u.memberRepo.Update(ctx, member); err != nil {
		return out, err
	}

	//出力（hashは返さない）
	safeMember := *member
	safeMember.PasswordHash = ""

	out.Member = safeMember
	out.Token = JwtAccessToken{
		AccessToken: accessToken,
		ExpiresIn:   int(accessExp.Sub(now).Seconds()),
	}

	return out, nil
}

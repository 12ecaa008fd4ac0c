package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func callWithAuth(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	err := mw(next)(c)
	require.NoError(t, err)
	return rec, c
}

func TestAuthJWT(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	mw := middleware.AuthJWT(cfg)

	t.Run("有効なtokenでmember_idとroleが入る", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  float64(7),
			"role": "USER",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})

		rec, c := callWithAuth(t, mw, "Bearer "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(7), c.Get(middleware.CtxMemberIDKey))
		assert.Equal(t, "USER", c.Get(middleware.CtxMemberRoleKey))
	})

	t.Run("ヘッダなしは401", func(t *testing.T) {
		rec, _ := callWithAuth(t, mw, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("別のシークレットで署名したtokenは401", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{
			"sub":  float64(7),
			"role": "USER",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})

		rec, _ := callWithAuth(t, mw, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("期限切れは401", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  float64(7),
			"role": "USER",
			"exp":  time.Now().Add(-time.Hour).Unix(),
		})

		rec, _ := callWithAuth(t, mw, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminRoleGuard(t *testing.T) {
	guard := middleware.AdminRoleGuard()
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	newCtx := func(role interface{}) (*httptest.ResponseRecorder, echo.Context) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(middleware.CtxMemberRoleKey, role)
		}
		return rec, c
	}

	t.Run("ADMINは通す", func(t *testing.T) {
		rec, c := newCtx("ADMIN")

		require.NoError(t, guard(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("USERは403", func(t *testing.T) {
		rec, c := newCtx("USER")

		require.NoError(t, guard(next)(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("role未設定は401", func(t *testing.T) {
		rec, c := newCtx(nil)

		require.NoError(t, guard(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

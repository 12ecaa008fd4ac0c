package server

import (
	"app/internal/config"
	appmw "app/internal/middleware"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	// 認証不要
	h.Auth.RegisterRoutes(e)
	h.Item.RegisterRoutes(e)

	// ログイン必須
	member := e.Group("", appmw.AuthJWT(cfg))
	h.Cart.RegisterRoutes(member)
	h.Order.RegisterRoutes(member)

	// 管理者のみ
	admin := e.Group("/admin", appmw.AuthJWT(cfg), appmw.AdminRoleGuard())
	h.AdminItem.RegisterRoutes(admin)
}

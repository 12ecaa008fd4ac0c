package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers は起動時にDIされるハンドラ一式。
type Handlers struct {
	Auth      *handler.AuthHandler
	Item      *handler.ItemHandler
	AdminItem *handler.AdminItemHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
}

// New はechoを組み立ててルートを登録する。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	registerRoutes(e, cfg, h)

	return e
}

// Start はHTTPサーバを起動する。
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}

package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// 認証必須の注文ルートを登録
func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/orders", h.placeOrder)
	g.POST("/orders/from-cart", h.placeFromCart)
	g.POST("/orders/:id/cancel", h.cancel)
	g.GET("/orders", h.list)
	g.GET("/orders/:id", h.detail)
}

type orderLineRequest struct {
	ItemID int64 `json:"item_id"`
	Count  int64 `json:"count"`
}

type placeOrderRequest struct {
	Lines []orderLineRequest `json:"lines"`
}

// 冪等キーはヘッダ優先、無ければこちらで発行する
func idempotencyKey(c echo.Context) string {
	if key := c.Request().Header.Get("X-Idempotency-Key"); key != "" {
		return key
	}
	return uuid.NewString()
}

func (h *OrderHandler) placeOrder(c echo.Context) error {
	memberID, ok := getMemberIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, usecase.OrderLineInput{ItemID: l.ItemID, Count: l.Count})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), memberID, usecase.PlaceOrderInput{
		Lines:          lines,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) placeFromCart(c echo.Context) error {
	memberID, ok := getMemberIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.PlaceOrderFromCart(c.Request().Context(), memberID, idempotencyKey(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	memberID, ok := getMemberIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.CancelOrder(c.Request().Context(), memberID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	memberID, ok := getMemberIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), memberID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	memberID, ok := getMemberIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), memberID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

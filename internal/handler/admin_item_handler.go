package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者向けの商品管理API。AuthJWT + AdminRoleGuard配下で使う。
type AdminItemHandler struct {
	uc           *usecase.ItemUsecase
	defaultLimit int
}

func NewAdminItemHandler(uc *usecase.ItemUsecase, defaultLimit int) *AdminItemHandler {
	if defaultLimit < 1 {
		defaultLimit = 20
	}
	return &AdminItemHandler{uc: uc, defaultLimit: defaultLimit}
}

func (h *AdminItemHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/items", h.create)
	g.PUT("/items/:id", h.update)
	g.PUT("/items/:id/stock", h.setStock)
	g.GET("/items", h.search)
}

type saveItemRequest struct {
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Detail     string `json:"detail"`
	Stock      int64  `json:"stock"`
	SellStatus string `json:"sell_status"`
}

type setStockRequest struct {
	Stock  int64  `json:"stock"`
	Reason string `json:"reason"`
}

type createItemResponse struct {
	ID int64 `json:"id"`
}

func (h *AdminItemHandler) create(c echo.Context) error {
	adminID, ok := getMemberIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req saveItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.uc.AdminCreateItem(c.Request().Context(), adminID, usecase.AdminSaveItemInput{
		Name:       req.Name,
		Price:      req.Price,
		Detail:     req.Detail,
		Stock:      req.Stock,
		SellStatus: req.SellStatus,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, createItemResponse{ID: id})
}

func (h *AdminItemHandler) update(c echo.Context) error {
	adminID, ok := getMemberIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req saveItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.AdminUpdateItem(c.Request().Context(), adminID, itemID, usecase.AdminSaveItemInput{
		Name:       req.Name,
		Price:      req.Price,
		Detail:     req.Detail,
		SellStatus: req.SellStatus,
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

// 在庫の直接補正。差分は調整履歴として残る。
func (h *AdminItemHandler) setStock(c echo.Context) error {
	adminID, ok := getMemberIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req setStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.AdminSetStock(c.Request().Context(), adminID, itemID, req.Stock, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "stock updated"})
}

// 管理画面の検索。公開側と同じ条件式を使い回す。
func (h *AdminItemHandler) search(c echo.Context) error {
	if _, ok := getMemberIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := h.defaultLimit
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	var minPrice *int64
	if v := c.QueryParam("min_price"); v != "" {
		mp, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_price"})
		}
		minPrice = &mp
	}

	out, err := h.uc.SearchItems(c.Request().Context(), usecase.SearchItemsInput{
		RegisteredWithin: c.QueryParam("registered_within"),
		SellStatus:       c.QueryParam("sell_status"),
		SearchBy:         c.QueryParam("search_by"),
		SearchQuery:      c.QueryParam("q"),
		MinPrice:         minPrice,
		Sort:             c.QueryParam("sort"),
		Page:             page,
		Limit:            limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

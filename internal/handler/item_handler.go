package handler

import (
	"errors"
	"net/http"
	"strconv"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//ドメインのエラーはここでHTTPへ変換する
	var stockErr *model.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "insufficient stock"})
	}
	if errors.Is(err, model.ErrOrderAlreadyCanceled) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "order already canceled"})
	}
	if errors.Is(err, model.ErrInvalidCount) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid count"})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /items の公開API
type ItemHandler struct {
	uc           *usecase.ItemUsecase
	defaultLimit int // limit未指定時の1ページ件数
}

// DI
func NewItemHandler(uc *usecase.ItemUsecase, defaultLimit int) *ItemHandler {
	if defaultLimit < 1 {
		defaultLimit = 20
	}
	return &ItemHandler{uc: uc, defaultLimit: defaultLimit}
}

// 公開商品のルートを登録
func (h *ItemHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/items", h.search)
	e.GET("/items/:id", h.detail)
}

func (h *ItemHandler) search(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	// limit（未指定は設定値）
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

func (h *ItemHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetItemDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

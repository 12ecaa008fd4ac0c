package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ItemUsecase struct {
	itemRepo      repo.ItemRepository
	inventoryRepo repo.InventoryRepository
	memberRepo    repo.MemberRepository
}

// DI
func NewItemUsecase(
	itemRepo repo.ItemRepository,
	inventoryRepo repo.InventoryRepository,
	memberRepo repo.MemberRepository,
) *ItemUsecase {
	return &ItemUsecase{
		itemRepo:      itemRepo,
		inventoryRepo: inventoryRepo,
		memberRepo:    memberRepo,
	}
}

// GET /itemsの入力DTO
type SearchItemsInput struct {
	RegisteredWithin string
	SellStatus       string
	SearchBy         string
	SearchQuery      string
	MinPrice         *int64
	Sort             string
	Page             int
	Limit            int
}

type ItemListOutput struct {
	Items []model.Item `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// SearchItems は条件をANDで合成した1ページ分＋総件数を返す。
// 条件はすべて任意で、未指定の条件は絞り込みに使わない。
func (u *ItemUsecase) SearchItems(ctx context.Context, in SearchItemsInput) (ItemListOutput, error) {
	if in.Page < 1 {
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.SearchQuery) > 100 {
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "query too long")
	}

	switch repo.RegisteredWithin(in.RegisteredWithin) {
	case "", repo.RegisteredWithinAll, repo.RegisteredWithin1Day, repo.RegisteredWithin1Week,
		repo.RegisteredWithin1Month, repo.RegisteredWithin6Months:
	default:
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid registered_within")
	}

	var sellStatus *model.ItemSellStatus
	switch in.SellStatus {
	case "":
	case string(model.ItemSellStatusSell), string(model.ItemSellStatusSoldOut):
		s := model.ItemSellStatus(in.SellStatus)
		sellStatus = &s
	default:
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sell_status")
	}

	switch in.SearchBy {
	case "", repo.SearchByName, repo.SearchByRegisteredBy:
	default:
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid search_by")
	}

	if in.MinPrice != nil && *in.MinPrice < 0 {
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}

	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.itemRepo.Search(ctx, repo.ItemSearchQuery{
		RegisteredWithin: repo.RegisteredWithin(in.RegisteredWithin),
		SellStatus:       sellStatus,
		SearchBy:         in.SearchBy,
		SearchQuery:      strings.TrimSpace(in.SearchQuery),
		MinPrice:         in.MinPrice,
		Sort:             in.Sort,
		Page:             in.Page,
		Limit:            in.Limit,
	})
	if err != nil {
		return ItemListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ItemListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ItemUsecase) GetItemDetail(ctx context.Context, itemID int64) (model.Item, error) {
	if itemID <= 0 {
		return model.Item{}, NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	item, err := u.itemRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return model.Item{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}

type AdminSaveItemInput struct {
	Name       string
	Price      int64
	Detail     string
	Stock      int64
	SellStatus string
}

// 商品の新規登録。登録者は管理者のメールアドレスで記録する。
func (u *ItemUsecase) AdminCreateItem(ctx context.Context, adminMemberID int64, in AdminSaveItemInput) (int64, error) {
	if adminMemberID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Stock < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	status, err := parseSellStatus(in.SellStatus)
	if err != nil {
		return 0, err
	}

	admin, err := u.memberRepo.FindByID(ctx, adminMemberID)
	if err != nil {
		if errors.Is(err, repo.ErrMemberNotFound) {
			return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	item, err := u.itemRepo.Create(ctx, model.Item{
		Name:         strings.TrimSpace(in.Name),
		Price:        in.Price,
		Detail:       in.Detail,
		StockNumber:  in.Stock,
		SellStatus:   status,
		RegisteredBy: admin.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item.ID, nil
}

// 商品の更新。在庫数はAdminSetStockで別に扱う
func (u *ItemUsecase) AdminUpdateItem(ctx context.Context, adminMemberID int64, itemID int64, in AdminSaveItemInput) error {
	if adminMemberID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	status, err := parseSellStatus(in.SellStatus)
	if err != nil {
		return err
	}

	err = u.itemRepo.Update(ctx, model.Item{
		ID:         itemID,
		Name:       strings.TrimSpace(in.Name),
		Price:      in.Price,
		Detail:     in.Detail,
		SellStatus: status,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 在庫の現在値を設定し、調整履歴を残す
func (u *ItemUsecase) AdminSetStock(ctx context.Context, adminMemberID int64, itemID int64, newStock int64, reason string) error {
	if adminMemberID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "reason required")
	}

	//変更前の在庫（差分計算用）
	item, err := u.itemRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventoryRepo.SetStock(ctx, itemID, newStock); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	adj := model.StockAdjustment{
		ItemID:        itemID,
		AdminMemberID: adminMemberID,
		Delta:         newStock - item.StockNumber,
		Reason:        strings.TrimSpace(reason),
		CreatedAt:     time.Now(),
	}
	if err := u.inventoryRepo.CreateAdjustment(ctx, adj); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func parseSellStatus(s string) (model.ItemSellStatus, error) {
	switch s {
	case "", string(model.ItemSellStatusSell):
		return model.ItemSellStatusSell, nil
	case string(model.ItemSellStatusSoldOut):
		return model.ItemSellStatusSoldOut, nil
	default:
		return "", NewHTTPError(http.StatusBadRequest, "invalid sell_status")
	}
}

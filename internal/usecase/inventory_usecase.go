package usecase

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// stockMovement は在庫を動かす1操作。
// 入荷・注文・調整・入荷取り消し・返品承認のすべてがこの形に落ちる。
type stockMovement struct {
	Kind      model.InventoryLogType
	VariantID int64
	Delta     int64
	RelatedID *int64
	UserID    *int64
	Note      string
}

// applyStockMovement はquantityを書き換える唯一の経路。
// 必ずWithinTxの中で呼ぶこと。手順：
//  1. バリアント行をFOR UPDATEでロック
//  2. before/afterを計算し、afterが負なら在庫不足でエラー（全体ロールバック）
//  3. quantityを更新し、監査ログを同一トランザクションで追記
//  4. 親商品のin_stockを再計算（失敗してもロールバックはしない）
func applyStockMovement(ctx context.Context, r repo.TxRepos, m stockMovement) (model.ProductVariant, model.InventoryLog, error) {
	if m.Delta == 0 {
		return model.ProductVariant{}, model.InventoryLog{}, ErrInvalidDelta
	}

	v, err := r.Variants().LockForUpdate(ctx, m.VariantID)
	if err != nil {
		return model.ProductVariant{}, model.InventoryLog{}, err
	}

	before := v.Quantity
	after := before + m.Delta
	if after < 0 {
		return model.ProductVariant{}, model.InventoryLog{}, &InsufficientStockError{
			VariantID: v.ID,
			Available: before,
			Requested: -m.Delta,
		}
	}

	if err := r.Variants().UpdateQuantity(ctx, v.ID, after); err != nil {
		return model.ProductVariant{}, model.InventoryLog{}, err
	}

	entry, err := r.InventoryLogs().Create(ctx, model.InventoryLog{
		VariantID:      v.ID,
		Delta:          m.Delta,
		QuantityBefore: before,
		QuantityAfter:  after,
		Type:           m.Kind,
		RelatedID:      m.RelatedID,
		UserID:         m.UserID,
		Note:           m.Note,
	})
	if err != nil {
		return model.ProductVariant{}, model.InventoryLog{}, err
	}

	v.Quantity = after
	refreshAvailability(ctx, r, v.ProductID)

	return v, entry, nil
}

// in_stockはbest-effortの二次インデックス扱い。
// 失敗してもここまでの在庫書き込みは巻き戻さない（Reconcileで回収する）。
func refreshAvailability(ctx context.Context, r repo.TxRepos, productID int64) {
	if _, err := r.Products().RefreshInStock(ctx, productID); err != nil {
		log.Printf("in_stock refresh failed: product_id=%d err=%v", productID, err)
	}
}

// movementError は在庫コアの失敗をHTTPエラーへ寄せる。
// InsufficientStockErrorはhandlerが構造化して返すのでそのまま通す。
func movementError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsInsufficientStock(err); ok {
		return err
	}
	if errors.Is(err, ErrInvalidDelta) {
		return NewHTTPError(http.StatusBadRequest, ErrInvalidDelta.Error())
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "variant not found")
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	return NewHTTPError(http.StatusInternalServerError, "db error")
}

type InventoryUsecase struct {
	tx          repo.TransactionManager
	logs        repo.InventoryLogRepository
	productRepo repo.ProductRepository
}

func NewInventoryUsecase(
	tx repo.TransactionManager,
	logs repo.InventoryLogRepository,
	productRepo repo.ProductRepository,
) *InventoryUsecase {
	return &InventoryUsecase{
		tx:          tx,
		logs:        logs,
		productRepo: productRepo,
	}
}

type AdjustStockInput struct {
	VariantID int64
	Delta     int64
	Note      string
}

type StockMovementOutput struct {
	Variant model.ProductVariant `json:"variant"`
	Log     model.InventoryLog   `json:"log"`
}

// Adjust は手動の在庫調整。deltaは正負どちらでもよいが0は不可。
func (u *InventoryUsecase) Adjust(ctx context.Context, adminUserID int64, in AdjustStockInput) (StockMovementOutput, error) {
	if adminUserID <= 0 {
		return StockMovementOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.VariantID <= 0 {
		return StockMovementOutput{}, NewHTTPError(http.StatusBadRequest, "invalid variant_id")
	}
	if in.Delta == 0 {
		return StockMovementOutput{}, NewHTTPError(http.StatusBadRequest, ErrInvalidDelta.Error())
	}
	if strings.TrimSpace(in.Note) == "" {
		return StockMovementOutput{}, NewHTTPError(http.StatusBadRequest, "note required")
	}

	var out StockMovementOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		v, entry, err := applyStockMovement(ctx, r, stockMovement{
			Kind:      model.InventoryLogAdjustment,
			VariantID: in.VariantID,
			Delta:     in.Delta,
			UserID:    &adminUserID,
			Note:      strings.TrimSpace(in.Note),
		})
		if err != nil {
			return movementError(err)
		}
		out = StockMovementOutput{Variant: v, Log: entry}
		return nil
	})

	if err != nil {
		return StockMovementOutput{}, err
	}
	return out, nil
}

type ListLogsInput struct {
	VariantID *int64
	Type      *string
	RelatedID *int64
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	Limit     int
}

type LogListOutput struct {
	Items []model.InventoryLog `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// ListLogs は監査ログの参照面。書き込み経路とは独立した読み取り専用。
func (u *InventoryUsecase) ListLogs(ctx context.Context, in ListLogsInput) (LogListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 25
	}

	f := repo.InventoryLogFilter{
		VariantID: in.VariantID,
		RelatedID: in.RelatedID,
		DateFrom:  in.DateFrom,
		DateTo:    in.DateTo,
		Page:      in.Page,
		Limit:     in.Limit,
	}
	if in.Type != nil {
		t := model.InventoryLogType(*in.Type)
		switch t {
		case model.InventoryLogReceipt, model.InventoryLogOrder, model.InventoryLogAdjustment,
			model.InventoryLogRevertReceipt, model.InventoryLogReturn:
		default:
			return LogListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid type")
		}
		f.Type = &t
	}

	items, total, err := u.logs.List(ctx, f)
	if err != nil {
		return LogListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return LogListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

type ReconcileOutput struct {
	Updated int64 `json:"updated"`
}

// Reconcile は全商品のin_stockを作り直す。
// projectorの失敗でズレた分をオンデマンドで直すための掃除口。
func (u *InventoryUsecase) Reconcile(ctx context.Context, adminUserID int64) (ReconcileOutput, error) {
	if adminUserID <= 0 {
		return ReconcileOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	n, err := u.productRepo.ReconcileInStock(ctx)
	if err != nil {
		return ReconcileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ReconcileOutput{Updated: n}, nil
}

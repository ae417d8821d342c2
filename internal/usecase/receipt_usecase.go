package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ReceiptUsecase struct {
	tx        repo.TransactionManager
	suppliers repo.SupplierRepository
}

func NewReceiptUsecase(tx repo.TransactionManager, suppliers repo.SupplierRepository) *ReceiptUsecase {
	return &ReceiptUsecase{tx: tx, suppliers: suppliers}
}

type ReceiptLineInput struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int64 `json:"quantity"`
	Price     int64 `json:"price"`
}

type CreateReceiptInput struct {
	SupplierID int64
	Note       string
	ImportDate *time.Time
	Items      []ReceiptLineInput
}

type ReceiptOutput struct {
	Receipt model.Receipt       `json:"receipt"`
	Items   []model.ReceiptItem `json:"items"`
}

// Create は入荷の登録。明細すべての在庫加算とログ追記を
// 1トランザクションで行い、1明細でも失敗したら全体を巻き戻す。
func (u *ReceiptUsecase) Create(ctx context.Context, actorUserID int64, in CreateReceiptInput) (ReceiptOutput, error) {
	if actorUserID <= 0 {
		return ReceiptOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.SupplierID <= 0 {
		return ReceiptOutput{}, NewHTTPError(http.StatusBadRequest, "invalid supplier_id")
	}
	if len(in.Items) == 0 {
		return ReceiptOutput{}, NewHTTPError(http.StatusBadRequest, "items required")
	}
	for _, it := range in.Items {
		if it.VariantID <= 0 {
			return ReceiptOutput{}, NewHTTPError(http.StatusBadRequest, "invalid variant_id")
		}
		if it.Quantity < 1 {
			return ReceiptOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
		}
		if it.Price < 0 {
			return ReceiptOutput{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
		}
	}

	//仕入先の存在確認
	if _, err := u.suppliers.FindByID(ctx, in.SupplierID); err != nil {
		if err == repo.ErrNotFound {
			return ReceiptOutput{}, NewHTTPError(http.StatusNotFound, "supplier not found")
		}
		return ReceiptOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	importDate := time.Now()
	if in.ImportDate != nil {
		importDate = *in.ImportDate
	}

	var out ReceiptOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var total int64 = 0
		for _, it := range in.Items {
			total += it.Quantity * it.Price
		}

		receipt, err := r.Receipts().Create(ctx, model.Receipt{
			SupplierID: in.SupplierID,
			UserID:     &actorUserID,
			Note:       in.Note,
			TotalPrice: total,
			ImportDate: importDate,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items := make([]model.ReceiptItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, model.ReceiptItem{
				VariantID: it.VariantID,
				Quantity:  it.Quantity,
				Price:     it.Price,
				Subtotal:  it.Quantity * it.Price,
			})
		}
		if err := r.ReceiptItems().CreateBulk(ctx, receipt.ID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細ごとに在庫を加算（未知のバリアントがあれば全体が巻き戻る）
		for _, it := range in.Items {
			_, _, err := applyStockMovement(ctx, r, stockMovement{
				Kind:      model.InventoryLogReceipt,
				VariantID: it.VariantID,
				Delta:     it.Quantity,
				RelatedID: &receipt.ID,
				UserID:    &actorUserID,
				Note:      fmt.Sprintf("Receipt #%d", receipt.ID),
			})
			if err != nil {
				return movementError(err)
			}
		}

		out = ReceiptOutput{Receipt: receipt, Items: items}
		return nil
	})

	if err != nil {
		return ReceiptOutput{}, err
	}
	return out, nil
}

// Revert は入荷の取り消し。明細分をすべて減算する。
// 1明細でも在庫が負になるなら全体を中止する。二重取り消しは409。
func (u *ReceiptUsecase) Revert(ctx context.Context, actorUserID int64, receiptID int64) ([]model.InventoryLog, error) {
	if actorUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if receiptID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid receipt id")
	}

	var logs []model.InventoryLog

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		receipt, err := r.Receipts().FindByID(ctx, receiptID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "receipt not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if receipt.RevertedAt != nil {
			return NewHTTPError(http.StatusConflict, "receipt already reverted")
		}

		items, err := r.ReceiptItems().ListByReceiptID(ctx, receiptID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		logs = make([]model.InventoryLog, 0, len(items))
		for _, it := range items {
			_, entry, err := applyStockMovement(ctx, r, stockMovement{
				Kind:      model.InventoryLogRevertReceipt,
				VariantID: it.VariantID,
				Delta:     -it.Quantity,
				RelatedID: &receipt.ID,
				UserID:    &actorUserID,
				Note:      fmt.Sprintf("Revert receipt #%d", receipt.ID),
			})
			if err != nil {
				return movementError(err)
			}
			logs = append(logs, entry)
		}

		//取り消しマーク（既に取り消し済みならここで弾かれる）
		if err := r.Receipts().MarkReverted(ctx, receipt.ID, time.Now()); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusConflict, "receipt already reverted")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (u *ReceiptUsecase) Get(ctx context.Context, receiptID int64) (ReceiptOutput, error) {
	if receiptID <= 0 {
		return ReceiptOutput{}, NewHTTPError(http.StatusBadRequest, "invalid receipt id")
	}

	var out ReceiptOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		receipt, err := r.Receipts().FindByID(ctx, receiptID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.ReceiptItems().ListByReceiptID(ctx, receiptID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = ReceiptOutput{Receipt: receipt, Items: items}
		return nil
	})

	if err != nil {
		return ReceiptOutput{}, err
	}
	return out, nil
}

type ListReceiptsInput struct {
	SupplierID *int64
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

type ReceiptListOutput struct {
	Items []model.Receipt `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ReceiptUsecase) List(ctx context.Context, in ListReceiptsInput) (ReceiptListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}

	var out ReceiptListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, total, err := r.Receipts().List(ctx, repo.ReceiptListQuery{
			SupplierID: in.SupplierID,
			DateFrom:   in.DateFrom,
			DateTo:     in.DateTo,
			Page:       in.Page,
			Limit:      in.Limit,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = ReceiptListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}
		return nil
	})

	if err != nil {
		return ReceiptListOutput{}, err
	}
	return out, nil
}

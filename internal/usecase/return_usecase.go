package usecase

import (
	"context"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ReturnUsecase struct {
	tx repo.TransactionManager
}

func NewReturnUsecase(tx repo.TransactionManager) *ReturnUsecase {
	return &ReturnUsecase{tx: tx}
}

type CreateReturnInput struct {
	OrderID     int64
	VariantID   int64
	Quantity    int64
	Reason      string
	RequestedBy string
}

// Create は返品申請の登録。この時点では在庫は動かない（pendingのまま）。
func (u *ReturnUsecase) Create(ctx context.Context, userID *int64, in CreateReturnInput) (model.ReturnRequest, error) {
	if in.OrderID <= 0 {
		return model.ReturnRequest{}, NewHTTPError(http.StatusBadRequest, "invalid order_id")
	}
	if in.VariantID <= 0 {
		return model.ReturnRequest{}, NewHTTPError(http.StatusBadRequest, "invalid variant_id")
	}
	if in.Quantity < 1 {
		return model.ReturnRequest{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
	}

	var out model.ReturnRequest

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, in.OrderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if _, err := r.Variants().FindByID(ctx, in.VariantID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "variant not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		ret, err := r.Returns().Create(ctx, model.ReturnRequest{
			OrderID:     in.OrderID,
			VariantID:   in.VariantID,
			UserID:      userID,
			Quantity:    in.Quantity,
			Reason:      in.Reason,
			RequestedBy: in.RequestedBy,
			Status:      model.ReturnStatusPending,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = ret
		return nil
	})

	if err != nil {
		return model.ReturnRequest{}, err
	}
	return out, nil
}

type ReviewReturnInput struct {
	Status    *string
	AdminNote *string
}

// Review はステータス/管理メモの更新。
// approvedへの遷移時、processedがまだ立っていなければ一度だけ在庫を戻す。
// 既にprocessed=trueなら在庫には触れない（承認の再送はno-op）。
func (u *ReturnUsecase) Review(ctx context.Context, adminUserID int64, returnID int64, in ReviewReturnInput) (model.ReturnRequest, error) {
	if adminUserID <= 0 {
		return model.ReturnRequest{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if returnID <= 0 {
		return model.ReturnRequest{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Status != nil && !validReturnStatus(model.ReturnStatus(*in.Status)) {
		return model.ReturnRequest{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out model.ReturnRequest

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//返品行をロックしてprocessedの読み書きを直列化
		ret, err := r.Returns().LockForUpdate(ctx, returnID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		newStatus := ret.Status
		if in.Status != nil {
			newStatus = model.ReturnStatus(*in.Status)
		}
		if in.AdminNote != nil {
			ret.AdminNote = *in.AdminNote
		}

		//approvedへの遷移で、まだ反映していなければ在庫を戻す
		if newStatus == model.ReturnStatusApproved && !ret.Processed {
			_, _, err := applyStockMovement(ctx, r, stockMovement{
				Kind:      model.InventoryLogReturn,
				VariantID: ret.VariantID,
				Delta:     ret.Quantity,
				RelatedID: &ret.ID,
				UserID:    &adminUserID,
				Note:      fmt.Sprintf("Return #%d approved", ret.ID),
			})
			if err != nil {
				return movementError(err)
			}
			ret.Processed = true
		}

		ret.Status = newStatus
		if err := r.Returns().Update(ctx, ret); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = ret
		return nil
	})

	if err != nil {
		return model.ReturnRequest{}, err
	}
	return out, nil
}

func (u *ReturnUsecase) Get(ctx context.Context, returnID int64) (model.ReturnRequest, error) {
	if returnID <= 0 {
		return model.ReturnRequest{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out model.ReturnRequest

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ret, err := r.Returns().FindByID(ctx, returnID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = ret
		return nil
	})

	if err != nil {
		return model.ReturnRequest{}, err
	}
	return out, nil
}

type ListReturnsInput struct {
	Status  *string
	OrderID *int64
	Page    int
	Limit   int
}

type ReturnListOutput struct {
	Items []model.ReturnRequest `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

func (u *ReturnUsecase) List(ctx context.Context, in ListReturnsInput) (ReturnListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}

	q := repo.ReturnListQuery{OrderID: in.OrderID, Page: in.Page, Limit: in.Limit}
	if in.Status != nil {
		s := model.ReturnStatus(*in.Status)
		if !validReturnStatus(s) {
			return ReturnListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		q.Status = &s
	}

	var out ReturnListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, total, err := r.Returns().List(ctx, q)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = ReturnListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}
		return nil
	})

	if err != nil {
		return ReturnListOutput{}, err
	}
	return out, nil
}

func validReturnStatus(s model.ReturnStatus) bool {
	switch s {
	case model.ReturnStatusPending, model.ReturnStatusApproved,
		model.ReturnStatusRejected, model.ReturnStatusRefunded:
		return true
	default:
		return false
	}
}

package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

type AdminListOrdersInput struct {
	Status        *string
	PaymentMethod *string
	Page          int
	Limit         int
}

type AdminOrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (u *AdminOrderUsecase) List(ctx context.Context, adminUserID int64, in AdminListOrdersInput) (AdminOrderListOutput, error) {
	if adminUserID <= 0 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}

	q := repo.OrderListQuery{Page: in.Page, Limit: in.Limit}
	if in.Status != nil {
		s := model.OrderStatus(*in.Status)
		if !validOrderStatus(s) {
			return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		q.Status = &s
	}
	if in.PaymentMethod != nil {
		pm := model.PaymentMethod(*in.PaymentMethod)
		if pm != model.PaymentCash && pm != model.PaymentBanking {
			return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
		}
		q.PaymentMethod = &pm
	}

	var out AdminOrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAll(ctx, q)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			lines, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			items = append(items, toOrderOutput(o, lines))
		}

		out = AdminOrderListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}
		return nil
	})

	if err != nil {
		return AdminOrderListOutput{}, err
	}
	return out, nil
}

type AdminUpdateOrderInput struct {
	Status *string
	Note   *string
}

func (u *AdminOrderUsecase) Update(ctx context.Context, adminUserID int64, orderID int64, in AdminUpdateOrderInput) (OrderOutput, error) {
	if adminUserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if in.Status != nil {
			s := model.OrderStatus(*in.Status)
			if !validOrderStatus(s) {
				return NewHTTPError(http.StatusBadRequest, "invalid status")
			}
			o.Status = s
		}
		if in.Note != nil {
			o.Note = *in.Note
		}

		if err := r.Orders().Update(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func validOrderStatus(s model.OrderStatus) bool {
	switch s {
	case model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusShipping,
		model.OrderStatusReturned, model.OrderStatusCompleted, model.OrderStatusCancelled:
		return true
	default:
		return false
	}
}

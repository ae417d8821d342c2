package usecase

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

// 注文1行。variant_idかproduct_idのどちらかを指定する。
// product_idだけの場合は在庫が足りるバリアントのうちid最小のものを選ぶ。
type OrderLineInput struct {
	VariantID *int64 `json:"variant_id"`
	ProductID *int64 `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type PlaceOrderInput struct {
	Customer      CustomerInput
	Note          string
	PaymentMethod string
	Items         []OrderLineInput
}

type OrderItemOutput struct {
	VariantID int64  `json:"variant_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	OrderCode     string            `json:"order_code"`
	Status        string            `json:"status"`
	PaymentMethod string            `json:"payment_method"`
	TotalPrice    int64             `json:"total_price"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

func validateCustomer(c CustomerInput) error {
	if strings.TrimSpace(c.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "customer name required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return NewHTTPError(http.StatusBadRequest, "customer email required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return NewHTTPError(http.StatusBadRequest, "customer phone required")
	}
	if strings.TrimSpace(c.Address) == "" {
		return NewHTTPError(http.StatusBadRequest, "customer address required")
	}
	return nil
}

func parsePaymentMethod(s string) (model.PaymentMethod, error) {
	switch s {
	//フロントは'cod'を送ってくることがある
	case "cod", "Cash":
		return model.PaymentCash, nil
	case "card", "Banking", "":
		return model.PaymentBanking, nil
	default:
		return "", NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}
}

// Place は注文作成。全明細の在庫確保と注文行の作成を1トランザクションで行う。
func (u *OrderUsecase) Place(ctx context.Context, userID *int64, in PlaceOrderInput) (OrderOutput, error) {
	if err := validateCustomer(in.Customer); err != nil {
		return OrderOutput{}, err
	}
	pm, err := parsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return OrderOutput{}, err
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "items required")
	}
	for _, ln := range in.Items {
		if ln.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
		}
		if ln.VariantID == nil && ln.ProductID == nil {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "variant_id or product_id required")
		}
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, items, err := placeOrderTx(ctx, r, userID, in.Customer, pm, in.Note, in.Items)
		if err != nil {
			return err
		}
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// placeOrderTx は注文作成の本体。2段階で進める：
//
//	precheck: 各行を具体的なバリアントに解決し、バリアントidを
//	          昇順に並べてロック（デッドロック回避のための固定順）、
//	          行をまたいだ合計要求量 <= 在庫 を確認する
//	commit:   注文・明細を作成し、行ごとに在庫を減算してログを残す
//
// どこで失敗しても注文ごと巻き戻る（部分確保は残らない）。
func placeOrderTx(ctx context.Context, r repo.TxRepos, userID *int64, customer CustomerInput, pm model.PaymentMethod, note string, lines []OrderLineInput) (model.Order, []model.OrderItem, error) {
	//行→バリアントの解決
	resolved := make([]int64, len(lines))
	requested := make(map[int64]int64)

	for i, ln := range lines {
		var variantID int64
		if ln.VariantID != nil {
			variantID = *ln.VariantID
		} else {
			vs, err := r.Variants().ListByProductID(ctx, *ln.ProductID)
			if err != nil {
				return model.Order{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if len(vs) == 0 {
				return model.Order{}, nil, NewHTTPError(http.StatusNotFound, "no variants for product")
			}

			//在庫が足りる最小idのバリアント。どれも足りなければ先頭を
			//選び、後段の検証で在庫不足として明確に返す。
			pick := vs[0]
			for _, v := range vs {
				if v.Quantity >= ln.Quantity {
					pick = v
					break
				}
			}
			variantID = pick.ID
		}
		resolved[i] = variantID
		requested[variantID] += ln.Quantity
	}

	//id昇順でロック（トランザクション同士のロック順を一本化）
	ids := make([]int64, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	locked := make(map[int64]model.ProductVariant, len(ids))
	for _, id := range ids {
		v, err := r.Variants().LockForUpdate(ctx, id)
		if err == repo.ErrNotFound {
			return model.Order{}, nil, NewHTTPError(http.StatusNotFound, "variant not found")
		}
		if err != nil {
			return model.Order{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if v.Quantity < requested[id] {
			return model.Order{}, nil, &InsufficientStockError{
				VariantID: v.ID,
				Available: v.Quantity,
				Requested: requested[id],
			}
		}
		locked[id] = v
	}

	//商品名スナップショット用
	names := make(map[int64]string)
	for _, v := range locked {
		if _, ok := names[v.ProductID]; ok {
			continue
		}
		p, err := r.Products().FindByID(ctx, v.ProductID)
		if err == repo.ErrNotFound {
			return model.Order{}, nil, NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return model.Order{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		names[v.ProductID] = p.Name
	}

	var total int64 = 0
	for i, ln := range lines {
		total += locked[resolved[i]].Price * ln.Quantity
	}

	//注文作成
	orderID, err := r.Orders().Create(ctx, model.Order{
		UserID:          userID,
		OrderCode:       uuid.NewString(),
		CustomerName:    strings.TrimSpace(customer.Name),
		CustomerEmail:   strings.TrimSpace(customer.Email),
		CustomerPhone:   strings.TrimSpace(customer.Phone),
		CustomerAddress: strings.TrimSpace(customer.Address),
		Note:            note,
		TotalPrice:      total,
		PaymentMethod:   pm,
		Status:          model.OrderStatusPending,
	})
	if err != nil {
		return model.Order{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//明細作成＋行ごとの在庫減算
	orderItems := make([]model.OrderItem, 0, len(lines))
	for i, ln := range lines {
		v := locked[resolved[i]]

		_, _, err := applyStockMovement(ctx, r, stockMovement{
			Kind:      model.InventoryLogOrder,
			VariantID: v.ID,
			Delta:     -ln.Quantity,
			RelatedID: &orderID,
			UserID:    userID,
		})
		if err != nil {
			return model.Order{}, nil, movementError(err)
		}

		orderItems = append(orderItems, model.OrderItem{
			VariantID:           v.ID,
			ProductNameSnapshot: names[v.ProductID],
			UnitPriceSnapshot:   v.Price,
			Quantity:            ln.Quantity,
			Subtotal:            v.Price * ln.Quantity,
		})
	}

	if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
		return model.Order{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	o, err := r.Orders().FindByID(ctx, orderID)
	if err != nil {
		return model.Order{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, orderItems, nil
}

type CheckoutInput struct {
	Customer      CustomerInput
	Note          string
	PaymentMethod string
}

// Checkout はACTIVEカートの中身で注文を作り、カートを空にする。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateCustomer(in.Customer); err != nil {
		return OrderOutput{}, err
	}
	pm, err := parsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return OrderOutput{}, err
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindActiveByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		lines := make([]OrderLineInput, 0, len(cartItems))
		for _, ci := range cartItems {
			id := ci.VariantID
			lines = append(lines, OrderLineInput{VariantID: &id, Quantity: ci.Quantity})
		}

		o, items, err := placeOrderTx(ctx, r, &userID, in.Customer, pm, in.Note, lines)
		if err != nil {
			return err
		}

		//カートをCHECKED_OUTにして明細をクリア（再注文防止）
		if err := r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusCheckedOut); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
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

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
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
		if o.UserID == nil || *o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
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

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			VariantID: it.VariantID,
			Name:      it.ProductNameSnapshot,
			UnitPrice: it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		OrderCode:     o.OrderCode,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		TotalPrice:    o.TotalPrice,
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}

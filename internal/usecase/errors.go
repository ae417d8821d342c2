package usecase

import (
	"errors"
	"fmt"
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

// 在庫変動のdeltaが0（変動にならない）
var ErrInvalidDelta = errors.New("delta must be a non-zero integer")

// 在庫不足。どのバリアントで、いくつ残っていて、いくつ要求されたかを持つ。
// handlerはこれを422の構造化レスポンスに変換する。
type InsufficientStockError struct {
	VariantID int64
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %d: available %d, requested %d",
		e.VariantID, e.Available, e.Requested)
}

func AsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var ie *InsufficientStockError
	ok := errors.As(err, &ie)
	return ie, ok
}

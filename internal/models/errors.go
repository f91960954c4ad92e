package models

import (
	"errors"
	"fmt"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrDuplicateSKU       = errors.New("models: duplicate sku")
	ErrDuplicateCategory  = errors.New("models: duplicate category")
	ErrDuplicateReview    = errors.New("models: duplicate review")
	ErrEmptyCart          = errors.New("models: cart is empty")
	ErrNotOwner           = errors.New("models: not the owner")
	ErrStageGuard         = errors.New("models: order cannot be cancelled at this stage")
	ErrCategoryInUse      = errors.New("models: category has products")
)

// InsufficientStockError names the product that is short, so the handler can
// surface it in the response message.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}

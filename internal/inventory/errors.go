package inventory

import (
	"errors"
	"fmt"
)

// Error kinds returned by Store operations. Match them with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrItemNotFound      = errors.New("item not found")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError is returned when a stock-out exceeds the current stock.
// It matches ErrInsufficientStock.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: have %d, need %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

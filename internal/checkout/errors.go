package checkout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCartNotFound: the caller has no cart row at all.
var ErrCartNotFound = errors.New("cart not found")

// ErrOrderNotFound: no order row for the requested id.
var ErrOrderNotFound = errors.New("order not found")

// InvalidCartItemsError: one or more requested ids do not resolve to items
// in the caller's cart (wrong cart, already consumed, or non-existent).
type InvalidCartItemsError struct {
	IDs []string
}

func (e *InvalidCartItemsError) Error() string {
	if len(e.IDs) == 0 {
		return "no cart items requested"
	}
	return "invalid cart items: " + strings.Join(e.IDs, ", ")
}

// InsufficientStockError: a requested quantity exceeds the product's
// available stock at lock time.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (%s): requested %d, available %d",
		e.Name, e.ProductID, e.Requested, e.Available)
}

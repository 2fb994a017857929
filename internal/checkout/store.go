package checkout

import "context"

// Line is one requested cart item joined with its product as seen at lock
// time inside the transaction.
type Line struct {
	CartItemID  string
	ProductID   string
	ProductName string
	Quantity    int // requested units
	PriceCents  int // unit price at purchase time
	Stock       int // available stock at lock time
}

// Tx scopes every read and mutation of one placement to a single database
// transaction. Implementations must lock the product rows returned by
// LockItems so that concurrent placements serialize on stock.
type Tx interface {
	CartByOwner(ctx context.Context, ownerID string) (Cart, error)
	LockItems(ctx context.Context, cartID string, itemIDs []string) ([]Line, error)
	DecrementStock(ctx context.Context, productID string, qty int) error
	InsertOrder(ctx context.Context, o Order) error
	InsertOrderItem(ctx context.Context, it OrderItem) error
	DeleteCartItems(ctx context.Context, itemIDs []string) error
}

// Store runs fn inside one transaction. A non-nil error from fn (or from
// commit) rolls back every mutation made through the Tx.
type Store interface {
	RunTx(ctx context.Context, fn func(Tx) error) error
	OrderStatus(ctx context.Context, orderID string) (Status, error)
}

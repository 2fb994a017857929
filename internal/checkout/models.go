package checkout

import "time"

type Cart struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time
}

type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
}

type Product struct {
	ID         string
	Name       string
	Quantity   int // available stock
	PriceCents int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Order struct {
	ID          string
	OwnerID     string
	Status      Status // see status.go
	AmountCents int
	Quantity    int
	CreatedAt   time.Time
}

// OrderItem is a snapshot taken at purchase time; AmountCents is the line
// total and does not follow later product price changes.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	Quantity    int
	AmountCents int
}

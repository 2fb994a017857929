package checkout

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Publisher delivers one notification per committed order.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, n Notification) error
}

type Confirmation struct {
	OrderID string
	Message string
}

// Engine places orders: it validates the request against the caller's cart,
// atomically decrements stock, writes the order and its items, deletes the
// consumed cart items, and then publishes a notification best-effort.
type Engine struct {
	Store     Store
	Publisher Publisher

	// OnNotifyError is called when the post-commit publish fails (the order
	// stays committed). Optional; used to bump metrics.
	OnNotifyError func(error)
}

func (e *Engine) PlaceOrder(ctx context.Context, ownerID, email string, cartItemIDs []string) (Confirmation, error) {
	// Duplicates collapse to one occurrence; each item is consumed once.
	ids := distinct(cartItemIDs)
	if len(ids) == 0 {
		return Confirmation{}, &InvalidCartItemsError{}
	}

	var (
		order Order
		note  Notification
	)
	err := e.Store.RunTx(ctx, func(tx Tx) error {
		cart, err := tx.CartByOwner(ctx, ownerID)
		if err != nil {
			return err
		}

		lines, err := tx.LockItems(ctx, cart.ID, ids)
		if err != nil {
			return err
		}

		// Every requested id must resolve to a row in the caller's cart.
		if missing := missingIDs(ids, lines); len(missing) > 0 {
			return &InvalidCartItemsError{IDs: missing}
		}

		// All stock checks pass before any decrement happens. Demand is
		// summed per product first: two cart items for the same product must
		// not each pass individually while their combined quantity oversells.
		demand := make(map[string]int, len(lines))
		for _, l := range lines {
			demand[l.ProductID] += l.Quantity
		}
		for _, l := range lines {
			if demand[l.ProductID] > l.Stock {
				return &InsufficientStockError{
					ProductID: l.ProductID,
					Name:      l.ProductName,
					Requested: demand[l.ProductID],
					Available: l.Stock,
				}
			}
		}

		for _, l := range lines {
			if err := tx.DecrementStock(ctx, l.ProductID, l.Quantity); err != nil {
				return err
			}
		}

		var amount, qty int
		for _, l := range lines {
			amount += l.PriceCents * l.Quantity
			qty += l.Quantity
		}

		order = Order{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Status:      StatusPending,
			AmountCents: amount,
			Quantity:    qty,
		}
		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}

		items := make([]NotificationItem, 0, len(lines))
		for _, l := range lines {
			oi := OrderItem{
				ID:          uuid.NewString(),
				OrderID:     order.ID,
				ProductID:   l.ProductID,
				Quantity:    l.Quantity,
				AmountCents: l.PriceCents * l.Quantity,
			}
			if err := tx.InsertOrderItem(ctx, oi); err != nil {
				return err
			}
			items = append(items, NotificationItem{
				Name:     l.ProductName,
				Quantity: l.Quantity,
				Price:    l.PriceCents,
			})
		}

		if err := tx.DeleteCartItems(ctx, ids); err != nil {
			return err
		}

		note = Notification{
			OrderID:       order.ID,
			Email:         email,
			TotalAmount:   order.AmountCents,
			TotalQuantity: order.Quantity,
			Items:         items,
		}
		return nil
	})
	if err != nil {
		return Confirmation{}, err
	}

	// The order is committed at this point; a failed publish is logged and
	// counted, never surfaced to the caller and never retried here.
	if err := e.Publisher.PublishOrderPlaced(ctx, note); err != nil {
		log.Printf("order %s committed but notification publish failed: %v", order.ID, err)
		if e.OnNotifyError != nil {
			e.OnNotifyError(err)
		}
	}

	return Confirmation{OrderID: order.ID, Message: "order placed"}, nil
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func missingIDs(want []string, got []Line) []string {
	have := make(map[string]bool, len(got))
	for _, l := range got {
		have[l.CartItemID] = true
	}
	var missing []string
	for _, id := range want {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

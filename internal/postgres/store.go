package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"checkout-service/internal/checkout"
)

// Store implements checkout.Store on a pgx pool.
type Store struct{ DB *pgxpool.Pool }

func (s *Store) RunTx(ctx context.Context, fn func(checkout.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) OrderStatus(ctx context.Context, orderID string) (checkout.Status, error) {
	var st string
	err := s.DB.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&st)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", checkout.ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}
	return checkout.Status(st), nil
}

type pgTx struct{ tx pgx.Tx }

func (t *pgTx) CartByOwner(ctx context.Context, ownerID string) (checkout.Cart, error) {
	var c checkout.Cart
	err := t.tx.QueryRow(ctx,
		`SELECT id, owner_id, created_at FROM carts WHERE owner_id=$1`, ownerID).
		Scan(&c.ID, &c.OwnerID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return checkout.Cart{}, checkout.ErrCartNotFound
	}
	if err != nil {
		return checkout.Cart{}, err
	}
	return c, nil
}

// LockItems fetches the requested items joined with their product and takes
// row locks on both tables. Locking the products serializes concurrent
// placements on stock; locking the cart items makes a blocked transaction
// re-read them after the winner commits, so rows deleted by a concurrent
// placement of the same cart drop out and the completeness check fails
// instead of charging stock twice.
func (t *pgTx) LockItems(ctx context.Context, cartID string, itemIDs []string) ([]checkout.Line, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT ci.id, p.id, p.name, ci.quantity, p.price_cents, p.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1 AND ci.id = ANY($2)
		FOR UPDATE OF ci, p`, cartID, itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []checkout.Line
	for rows.Next() {
		var l checkout.Line
		if err := rows.Scan(&l.CartItemID, &l.ProductID, &l.ProductName, &l.Quantity, &l.PriceCents, &l.Stock); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (t *pgTx) DecrementStock(ctx context.Context, productID string, qty int) error {
	ct, err := t.tx.Exec(ctx,
		`UPDATE products SET quantity = quantity - $2, updated_at = now() WHERE id=$1`,
		productID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return fmt.Errorf("product not found: %s", productID)
	}
	return nil
}

func (t *pgTx) InsertOrder(ctx context.Context, o checkout.Order) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO orders(id, owner_id, status, amount_cents, quantity)
		VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.OwnerID, string(o.Status), o.AmountCents, o.Quantity)
	return err
}

func (t *pgTx) InsertOrderItem(ctx context.Context, it checkout.OrderItem) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO order_items(id, order_id, product_id, quantity, amount_cents)
		VALUES ($1, $2, $3, $4, $5)`,
		it.ID, it.OrderID, it.ProductID, it.Quantity, it.AmountCents)
	return err
}

func (t *pgTx) DeleteCartItems(ctx context.Context, itemIDs []string) error {
	ct, err := t.tx.Exec(ctx, `DELETE FROM cart_items WHERE id = ANY($1)`, itemIDs)
	if err != nil {
		return err
	}
	// Every locked item must still be there; anything less means a concurrent
	// placement consumed part of the cart and this order must not commit.
	if ct.RowsAffected() != int64(len(itemIDs)) {
		return fmt.Errorf("cart items changed during placement: deleted %d of %d", ct.RowsAffected(), len(itemIDs))
	}
	return nil
}

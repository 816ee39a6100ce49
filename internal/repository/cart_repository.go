package repository

import (
	"context"
	"database/sql"

	"github.com/rezamb/canteen-ordering/internal/model"
)

type CartRepo struct{ DB *sql.DB }

func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{DB: db} }

// MaxCartQuantity bounds the quantity of a single cart line.  Handlers
// reject larger requests up front; the upsert clamps accumulation so
// repeated adds cannot push a stored line past the cap either.
const MaxCartQuantity = 100

// Upsert adds quantity for a (user, product) pair.  The cart_items table
// carries a unique key on (user_id, product_id), so concurrent adds for the
// same pair accumulate atomically instead of racing a read-then-write.
// Accumulation is clamped at MaxCartQuantity.
func (r *CartRepo) Upsert(ctx context.Context, userID, productID uint64, quantity uint32) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity)
		 VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE quantity = LEAST(quantity + VALUES(quantity), ?), updated_at = NOW()`,
		userID, productID, quantity, MaxCartQuantity)
	return err
}

// SetQuantity overwrites the quantity for a cart line.  Quantity zero removes
// the line.
func (r *CartRepo) SetQuantity(ctx context.Context, userID, productID uint64, quantity uint32) error {
	if quantity == 0 {
		return r.Remove(ctx, userID, productID)
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE cart_items SET quantity=?, updated_at=NOW() WHERE user_id=? AND product_id=?",
		quantity, userID, productID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove deletes one cart line.
func (r *CartRepo) Remove(ctx context.Context, userID, productID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id=? AND product_id=?", userID, productID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear empties the user's cart.
func (r *CartRepo) Clear(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id=?", userID)
	return err
}

// ClearTx empties the user's cart inside an existing transaction (used by
// order placement).
func (r *CartRepo) ClearTx(ctx context.Context, tx *sql.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id=?", userID)
	return err
}

// ListLines returns the user's cart joined with current product data.
func (r *CartRepo) ListLines(ctx context.Context, userID uint64) ([]model.CartLine, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT ci.product_id, p.name, p.price_cents, p.available, ci.quantity
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.user_id = ?
		 ORDER BY ci.created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.CartLine
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.PriceCents, &l.Available, &l.Quantity); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

package repository

import (
	"context"
	"database/sql"

	"github.com/rezamb/canteen-ordering/internal/model"
)

type OrderRepo struct{ db *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span repositories (order placement touches orders, order_items,
// wallet_transactions, user_coupons and cart_items).
func (r *OrderRepo) DB() *sql.DB { return r.db }

const orderCols = "id,user_id,status,subtotal_cents,discount_cents,total_cents,coupon_code,payment_method,payment_ref,receipt,created_at,updated_at"

func scanOrder(row interface{ Scan(...any) error }) (model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.SubtotalCents, &o.DiscountCents,
		&o.TotalCents, &o.CouponCode, &o.PaymentMethod, &o.PaymentRef, &o.Receipt,
		&o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// CreateTx inserts an order and its item snapshots inside the caller's
// transaction and returns the order ID.  Status starts at pending.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o model.Order, items []model.OrderItem) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id,status,subtotal_cents,discount_cents,total_cents,coupon_code,payment_method,payment_ref,receipt)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		o.UserID, string(model.StatusPending), o.SubtotalCents, o.DiscountCents,
		o.TotalCents, o.CouponCode, o.PaymentMethod, o.PaymentRef, o.Receipt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	orderID := uint64(id)
	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id,product_id,name,price_cents,quantity) VALUES (?,?,?,?,?)",
			orderID, it.ProductID, it.Name, it.PriceCents, it.Quantity); err != nil {
			return 0, err
		}
	}
	return orderID, nil
}

// GetByID fetches a single order.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		"SELECT "+orderCols+" FROM orders WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return o, ErrNotFound
	}
	return o, err
}

// Items returns the snapshot lines of an order.
func (r *OrderRepo) Items(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,order_id,product_id,name,price_cents,quantity FROM order_items WHERE order_id=?", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.PriceCents, &it.Quantity); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderCols+" FROM orders WHERE user_id=? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// List returns all orders, optionally filtered by status, newest first.
// Used by the canteen dashboard.
func (r *OrderRepo) List(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status != "" {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+orderCols+" FROM orders WHERE status=? ORDER BY created_at DESC", string(status))
	} else {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+orderCols+" FROM orders ORDER BY created_at DESC")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]model.Order, error) {
	var out []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus writes the new status.  Transition legality is the caller's
// responsibility (the order package owns the adjacency table).
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status model.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status=?, updated_at=NOW() WHERE id=?", string(status), id)
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

// UpdateStatusTx is UpdateStatus inside an existing transaction (used by
// owner cancellation together with the wallet refund).
func (r *OrderRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.OrderStatus) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE orders SET status=?, updated_at=NOW() WHERE id=?", string(status), id)
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

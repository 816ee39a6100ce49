package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rezamb/canteen-ordering/internal/model"
)

type CouponRepo struct{ DB *sql.DB }

func NewCouponRepo(db *sql.DB) *CouponRepo { return &CouponRepo{DB: db} }

// ErrCouponCodeExists is returned when creating a coupon whose code is
// already taken.  Uniqueness is enforced by a unique key on coupons.code, so
// concurrent creations cannot slip past an application-level check.
var ErrCouponCodeExists = errors.New("coupon code already exists")

const couponCols = "id,code,description,discount_type,discount_value,min_order_cents,expires_at,active,created_at"

func scanCoupon(row interface{ Scan(...any) error }) (model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.Description, &c.DiscountType, &c.DiscountValue,
		&c.MinOrderCents, &c.ExpiresAt, &c.Active, &c.CreatedAt)
	return c, err
}

// Create inserts a coupon and returns its ID.  A duplicate code maps to
// ErrCouponCodeExists via the MySQL duplicate-key error.
func (r *CouponRepo) Create(ctx context.Context, c model.Coupon) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO coupons (code,description,discount_type,discount_value,min_order_cents,expires_at,active)
		 VALUES (?,?,?,?,?,?,?)`,
		strings.ToUpper(strings.TrimSpace(c.Code)), c.Description, c.DiscountType,
		c.DiscountValue, c.MinOrderCents, c.ExpiresAt, c.Active)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrCouponCodeExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetActiveByCode fetches an active, unexpired coupon by code.
func (r *CouponRepo) GetActiveByCode(ctx context.Context, code string) (model.Coupon, error) {
	c, err := scanCoupon(r.DB.QueryRowContext(ctx,
		"SELECT "+couponCols+" FROM coupons WHERE code=? AND active=1 AND expires_at > NOW() LIMIT 1",
		strings.ToUpper(strings.TrimSpace(code))))
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// ListActive returns coupons users may currently redeem.
func (r *CouponRepo) ListActive(ctx context.Context) ([]model.Coupon, error) {
	return r.list(ctx, "SELECT "+couponCols+" FROM coupons WHERE active=1 AND expires_at > NOW() ORDER BY expires_at")
}

// ListAll returns every coupon including expired and disabled ones (admin
// view).
func (r *CouponRepo) ListAll(ctx context.Context) ([]model.Coupon, error) {
	return r.list(ctx, "SELECT "+couponCols+" FROM coupons ORDER BY created_at DESC")
}

func (r *CouponRepo) list(ctx context.Context, q string) ([]model.Coupon, error) {
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a coupon.  Past redemptions in user_coupons are kept.
func (r *CouponRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM coupons WHERE id=?", id)
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

// RecordUseTx writes a redemption row inside the order placement
// transaction.
func (r *CouponRepo) RecordUseTx(ctx context.Context, tx *sql.Tx, userID, couponID, orderID uint64) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO user_coupons (user_id,coupon_id,order_id) VALUES (?,?,?)",
		userID, couponID, orderID)
	return err
}

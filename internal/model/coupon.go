package model

import "time"

// Discount kinds for coupons.
const (
    DiscountPercent = "percent"
    DiscountFlat    = "flat"
)

// Coupon models a row in the `coupons` table.  Code carries a unique key in
// the schema; duplicate creation is rejected by the store, not by a
// read-then-write check.
type Coupon struct {
    ID            uint64    // coupons.id
    Code          string    // coupons.code (unique)
    Description   string    // coupons.description
    DiscountType  string    // coupons.discount_type ("percent" | "flat")
    DiscountValue uint32    // coupons.discount_value (percent 1-100 or cents)
    MinOrderCents uint32    // coupons.min_order_cents
    ExpiresAt     time.Time // coupons.expires_at
    Active        bool      // coupons.active
    CreatedAt     time.Time // coupons.created_at
}

// UserCoupon records a redemption in the `user_coupons` table, one row per
// (user, coupon) use.
type UserCoupon struct {
    ID       uint64    // user_coupons.id
    UserID   uint64    // user_coupons.user_id
    CouponID uint64    // user_coupons.coupon_id
    OrderID  uint64    // user_coupons.order_id
    UsedAt   time.Time // user_coupons.used_at
}

package model

import "time"

// OrderStatus enumerates the lifecycle states of an order.  The progression
// is pending → accepted → preparing → ready → completed, with cancelled
// reachable from any non-terminal state.  Transition legality is enforced by
// the order package, not here.
type OrderStatus string

const (
    StatusPending   OrderStatus = "pending"
    StatusAccepted  OrderStatus = "accepted"
    StatusPreparing OrderStatus = "preparing"
    StatusReady     OrderStatus = "ready"
    StatusCompleted OrderStatus = "completed"
    StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a member of the enumerated status set.
func (s OrderStatus) Valid() bool {
    switch s {
    case StatusPending, StatusAccepted, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
        return true
    }
    return false
}

// Terminal reports whether no further transitions are allowed out of s.
func (s OrderStatus) Terminal() bool {
    return s == StatusCompleted || s == StatusCancelled
}

// Order models a row in the `orders` table.  An order is owned by exactly
// one user; its status is mutated only by canteen-role principals (or by the
// owner through cancellation).
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – owner of the order.
//  Status         – current lifecycle state.
//  SubtotalCents  – sum of item snapshots before discount.
//  DiscountCents  – coupon discount applied at placement.
//  TotalCents     – amount charged (subtotal - discount).
//  CouponCode     – coupon applied, if any.
//  PaymentMethod  – "wallet" or "gateway".
//  PaymentRef     – external gateway order id, if any.
//  Receipt        – receipt number generated at placement.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Order struct {
    ID            uint64      // orders.id
    UserID        uint64      // orders.user_id
    Status        OrderStatus // orders.status
    SubtotalCents uint32      // orders.subtotal_cents
    DiscountCents uint32      // orders.discount_cents
    TotalCents    uint32      // orders.total_cents
    CouponCode    *string     // orders.coupon_code (nullable)
    PaymentMethod string      // orders.payment_method
    PaymentRef    *string     // orders.payment_ref (nullable)
    Receipt       string      // orders.receipt
    CreatedAt     time.Time   // orders.created_at
    UpdatedAt     time.Time   // orders.updated_at
}

// OrderItem models a row in the `order_items` table.  Name and price are
// snapshots taken at placement so later product edits do not rewrite
// history.
type OrderItem struct {
    ID         uint64 // order_items.id
    OrderID    uint64 // order_items.order_id
    ProductID  uint64 // order_items.product_id
    Name       string // order_items.name
    PriceCents uint32 // order_items.price_cents
    Quantity   uint32 // order_items.quantity
}

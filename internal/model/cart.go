package model

import "time"

// CartItem models a row in the `cart_items` table.  The table carries a
// unique key on (user_id, product_id) so that adding the same product twice
// accumulates quantity through an atomic upsert instead of creating
// duplicate rows.
type CartItem struct {
    ID        uint64    // cart_items.id
    UserID    uint64    // cart_items.user_id
    ProductID uint64    // cart_items.product_id
    Quantity  uint32    // cart_items.quantity
    CreatedAt time.Time // cart_items.created_at
    UpdatedAt time.Time // cart_items.updated_at
}

// CartLine is a cart item joined with its product for display and for order
// assembly.  PriceCents is the current product price; order placement
// snapshots it into order_items.
type CartLine struct {
    ProductID  uint64
    Name       string
    PriceCents uint32
    Available  bool
    Quantity   uint32
}

package model

import "time"

// Product models a row in the `products` table.  Prices are stored in the
// smallest currency unit to avoid floating point drift.
type Product struct {
    ID          uint64    // products.id
    Name        string    // products.name
    Description string    // products.description
    Category    string    // products.category (e.g. "snacks", "meals", "drinks")
    PriceCents  uint32    // products.price_cents
    ImageURL    string    // products.image_url
    Available   bool      // products.available
    CreatedAt   time.Time // products.created_at
    UpdatedAt   time.Time // products.updated_at
}

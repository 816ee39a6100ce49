// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderStatusEvent is published whenever an order changes status.  It
// contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type OrderStatusEvent struct {
    OrderID    uint64 `json:"order_id"`
    UserID     uint64 `json:"user_id"`
    FromStatus string `json:"from_status"`
    ToStatus   string `json:"to_status"`
    TotalCents uint32 `json:"total_cents"`
    Receipt    string `json:"receipt"`
    ChangedAt  string `json:"changed_at"`
}

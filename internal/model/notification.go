package model

import "time"

// Notification models a row in the `notifications` table.  Notifications are
// addressed to a single user and written fire-and-forget: a failed insert is
// logged but never rolls back the operation that produced it.
type Notification struct {
    ID        uint64    // notifications.id
    UserID    uint64    // notifications.user_id
    Message   string    // notifications.message
    Read      bool      // notifications.is_read
    CreatedAt time.Time // notifications.created_at
}

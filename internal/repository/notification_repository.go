package repository

import (
	"context"
	"database/sql"

	"github.com/rezamb/canteen-ordering/internal/model"
)

type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create inserts one notification for a user.
func (r *NotificationRepo) Create(ctx context.Context, userID uint64, message string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (user_id, message) VALUES (?,?)", userID, message)
	return err
}

// Broadcast inserts the same message for every user in a single statement.
func (r *NotificationRepo) Broadcast(ctx context.Context, message string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (user_id, message) SELECT id, ? FROM users", message)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,message,is_read,created_at FROM notifications WHERE user_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags a notification as read.  The user id is part of the WHERE
// clause so users cannot mark someone else's notification.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1 WHERE id=? AND user_id=?", id, userID)
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

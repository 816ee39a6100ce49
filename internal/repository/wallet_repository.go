package repository

import (
	"context"
	"database/sql"

	"github.com/rezamb/canteen-ordering/internal/model"
)

type WalletRepo struct{ DB *sql.DB }

func NewWalletRepo(db *sql.DB) *WalletRepo { return &WalletRepo{DB: db} }

// Balance returns the user's balance as the sum of the append-only ledger.
func (r *WalletRepo) Balance(ctx context.Context, userID uint64) (int64, error) {
	var bal int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN kind='credit' THEN amount_cents ELSE -amount_cents END), 0)
		 FROM wallet_transactions WHERE user_id=?`, userID).Scan(&bal)
	return bal, err
}

// List returns the user's transactions, newest first.
func (r *WalletRepo) List(ctx context.Context, userID uint64) ([]model.WalletTransaction, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,kind,amount_cents,reason,created_at FROM wallet_transactions WHERE user_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.WalletTransaction
	for rows.Next() {
		var t model.WalletTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Kind, &t.AmountCents, &t.Reason, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Credit appends a credit row.
func (r *WalletRepo) Credit(ctx context.Context, userID uint64, amountCents uint32, reason string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO wallet_transactions (user_id,kind,amount_cents,reason) VALUES (?,?,?,?)",
		userID, model.WalletCredit, amountCents, reason)
	return err
}

// CreditTx appends a credit row inside an existing transaction (refunds).
func (r *WalletRepo) CreditTx(ctx context.Context, tx *sql.Tx, userID uint64, amountCents uint32, reason string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO wallet_transactions (user_id,kind,amount_cents,reason) VALUES (?,?,?,?)",
		userID, model.WalletCredit, amountCents, reason)
	return err
}

// DebitTx appends a debit row inside the caller's transaction after checking
// the balance.  The user row is locked first so two concurrent debits cannot
// both pass the balance check.
func (r *WalletRepo) DebitTx(ctx context.Context, tx *sql.Tx, userID uint64, amountCents uint32, reason string) error {
	var id uint64
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM users WHERE id=? FOR UPDATE", userID).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	var bal int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN kind='credit' THEN amount_cents ELSE -amount_cents END), 0)
		 FROM wallet_transactions WHERE user_id=?`, userID).Scan(&bal); err != nil {
		return err
	}
	if bal < int64(amountCents) {
		return ErrInsufficientBalance
	}
	_, err := tx.ExecContext(ctx,
		"INSERT INTO wallet_transactions (user_id,kind,amount_cents,reason) VALUES (?,?,?,?)",
		userID, model.WalletDebit, amountCents, reason)
	return err
}

package model

import "time"

// Wallet transaction kinds.
const (
    WalletCredit = "credit"
    WalletDebit  = "debit"
)

// WalletTransaction models a row in the append-only `wallet_transactions`
// table.  A user's balance is the sum of credits minus debits; there is no
// separate balance column to drift out of sync.
type WalletTransaction struct {
    ID          uint64    // wallet_transactions.id
    UserID      uint64    // wallet_transactions.user_id
    Kind        string    // wallet_transactions.kind ("credit" | "debit")
    AmountCents uint32    // wallet_transactions.amount_cents
    Reason      string    // wallet_transactions.reason (e.g. "topup", "order #12")
    CreatedAt   time.Time // wallet_transactions.created_at
}

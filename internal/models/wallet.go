package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's spendable balance. The balance column is the sole
// source of truth for spendable funds and is only mutated inside a database
// transaction that holds an exclusive row lock on the wallet.
type Wallet struct {
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
	Balance   decimal.Decimal `db:"balance"`
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
}

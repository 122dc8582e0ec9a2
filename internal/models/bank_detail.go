package models

import "time"

// BankDetail is the destination bank account saved per user for payouts.
// The last submitted account wins.
type BankDetail struct {
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	BankName      string    `db:"bank_name"`
	BankCode      string    `db:"bank_code"`
	AccountNumber string    `db:"account_number"`
	AccountName   string    `db:"account_name"`
	ID            int64     `db:"id"`
	UserID        int64     `db:"user_id"`
}

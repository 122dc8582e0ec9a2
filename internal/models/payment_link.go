package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentLinkStatus is the stored lifecycle state of a link. Expiry is
// derived from ExpiresAt, not stored.
type PaymentLinkStatus string

const (
	PaymentLinkStatusActive  PaymentLinkStatus = "active"
	PaymentLinkStatusRevoked PaymentLinkStatus = "revoked"
)

// PaymentLink lets an actor receive funds. A nil Amount means the payer
// chooses the amount (an open "tipping" link).
type PaymentLink struct {
	CreatedAt time.Time         `db:"created_at"`
	UpdatedAt time.Time         `db:"updated_at"`
	Amount    *decimal.Decimal  `db:"amount"`
	ExpiresAt *time.Time        `db:"expires_at"`
	Token     string            `db:"token"`
	Memo      string            `db:"memo"`
	Status    PaymentLinkStatus `db:"status"`
	ID        int64             `db:"id"`
	WalletID  int64             `db:"wallet_id"`
	UserID    int64             `db:"user_id"`
}

// IsActive reports whether the link is usable: status active and either no
// expiry or an expiry in the future.
func (l *PaymentLink) IsActive() bool {
	if l.Status != PaymentLinkStatusActive {
		return false
	}
	if l.ExpiresAt != nil && time.Now().After(*l.ExpiresAt) {
		return false
	}
	return true
}

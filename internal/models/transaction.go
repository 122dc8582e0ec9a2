package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming into the ledger (payment) from
// money leaving it (payout).
type TransactionType string

const (
	TransactionTypePayment TransactionType = "payment"
	TransactionTypePayout  TransactionType = "payout"
)

// TransactionStatus is the settlement state of a ledger entry.
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// Terminal reports whether a status permits no further transition.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusSuccess || s == TransactionStatusFailed
}

// Reference prefixes identify the origin and settlement path of an entry.
// The sweeper and webhook dispatcher route on them: payment-style prefixes
// are resolved against the gateway's charge-verify endpoint, payout entries
// against its transfer-status endpoint.
const (
	RefPrefixDeposit    = "DEP-" // authenticated deposit init
	RefPrefixCheckout   = "WEB-" // unauthenticated checkout init
	RefPrefixPayment    = "PAY-" // in-app wallet-to-wallet payment
	RefPrefixWithdrawal = "WD-"  // withdrawal/payout
)

// Metadata keys used in Transaction.Meta.
const (
	MetaIdempotencyKey = "idempotency_key"
	MetaDirection      = "direction"
	MetaWebhookEvents  = "webhook_events"
	MetaFee            = "fee"
	MetaNet            = "net"
	MetaBank           = "bank"
	MetaWalletID       = "wallet_id"
	MetaUserID         = "user_id"
	MetaPaymentLinkID  = "payment_link_id"
	MetaPayerEmail     = "payer_email"
	MetaPayerName      = "payer_name"
	MetaPayerPhone     = "phone"
	MetaSource         = "source"
	MetaReconciledAt   = "reconciled_at"
	MetaFailureReason  = "failure_reason"
)

// Transaction is one recorded money-movement intent/outcome (a ledger
// entry). Exactly one of DrWalletID/CrWalletID may be nil: a nil debit side
// means funds originate externally, a nil credit side means funds leave
// externally. Entries are never physically deleted (soft delete only).
type Transaction struct {
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at"`
	Meta            map[string]any    `db:"meta"`
	DrWalletID      *int64            `db:"dr_wallet_id"`
	CrWalletID      *int64            `db:"cr_wallet_id"`
	InitiatorUserID *int64            `db:"initiator_user_id"`
	ExternalRef     *string           `db:"external_ref"`
	ExpiresAt       *time.Time        `db:"expires_at"`
	DeletedAt       *time.Time        `db:"deleted_at"`
	Reference       string            `db:"reference"`
	Description     string            `db:"description"`
	Type            TransactionType   `db:"type"`
	Status          TransactionStatus `db:"status"`
	Amount          decimal.Decimal   `db:"amount"`
	ID              int64             `db:"id"`
}

// IdempotencyKey returns the caller-supplied idempotency key stored in the
// entry metadata, or "" if none was supplied.
func (t *Transaction) IdempotencyKey() string {
	if t.Meta == nil {
		return ""
	}
	key, _ := t.Meta[MetaIdempotencyKey].(string)
	return key
}

// HasPrefix reports whether the entry reference carries the given prefix.
func (t *Transaction) HasPrefix(prefix string) bool {
	return strings.HasPrefix(t.Reference, prefix)
}

// AppendAuditEvent records a settlement signal in the entry's metadata
// audit trail.
func (t *Transaction) AppendAuditEvent(event map[string]any) {
	if t.Meta == nil {
		t.Meta = map[string]any{}
	}
	events, _ := t.Meta[MetaWebhookEvents].([]any)
	t.Meta[MetaWebhookEvents] = append(events, event)
}

package service

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway is the external payment-processing counterparty. All amounts at
// this boundary are decimal major units; implementations convert to the
// gateway's integer minor units. Calls must carry a bounded timeout.
type Gateway interface {
	InitializeCharge(ctx context.Context, intent ChargeIntent) (*ChargeAuthorization, error)
	VerifyCharge(ctx context.Context, reference string) (*ChargeStatus, error)
	CreateTransferRecipient(ctx context.Context, intent RecipientIntent) (string, error)
	CheckAvailableBalance(ctx context.Context) (decimal.Decimal, error)
	InitiateTransfer(ctx context.Context, intent TransferIntent) (string, error)
	VerifyTransfer(ctx context.Context, transferCode string) (*TransferStatus, error)
	ListBanks(ctx context.Context) ([]Bank, error)
}

// ChargeIntent asks the gateway for a hosted-checkout session.
type ChargeIntent struct {
	Metadata    map[string]any
	Amount      decimal.Decimal
	Email       string
	Reference   string
	CallbackURL string
}

// ChargeAuthorization is the hosted-checkout handle the payer is sent to.
type ChargeAuthorization struct {
	AuthorizationURL string
	AccessCode       string
}

// ChargeStatus is the gateway's view of a charge. Status values other than
// success/failed (e.g. abandoned, ongoing) are non-terminal.
type ChargeStatus struct {
	Status     string
	ExternalID string
}

// RecipientIntent registers a payout destination with the gateway.
type RecipientIntent struct {
	Name          string
	AccountNumber string
	BankCode      string
}

// TransferIntent asks the gateway to move money to a registered recipient.
type TransferIntent struct {
	Amount        decimal.Decimal
	RecipientCode string
	Reference     string
	Reason        string
}

// TransferStatus is the gateway's view of a transfer.
type TransferStatus struct {
	Status string
}

// Bank is one entry of the gateway's bank directory.
type Bank struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Terminal gateway statuses recognized by settlement.
const (
	GatewayStatusSuccess = "success"
	GatewayStatusFailed  = "failed"
)

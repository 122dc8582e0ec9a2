package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/TheRightGift/coolpayServer/internal/db"
	"github.com/TheRightGift/coolpayServer/internal/models"
	"github.com/TheRightGift/coolpayServer/internal/repository"
	"github.com/shopspring/decimal"
)

// SettlementKind is the explicit variant a settlement signal transitions
// on. Every signal source (webhook push, reconciliation pull) maps into one
// of these four, so the wallet effect of a status change lives in exactly
// one place.
type SettlementKind string

const (
	SettlePaymentSuccess SettlementKind = "payment_success"
	SettlePaymentFailure SettlementKind = "payment_failure"
	SettlePayoutSuccess  SettlementKind = "payout_success"
	SettlePayoutFailure  SettlementKind = "payout_failure"
)

// Signal sources recorded in the audit trail.
const (
	SignalSourceWebhook   = "webhook"
	SignalSourceReconcile = "reconcile"
)

// Signal is one report of a ledger entry's external status.
type Signal struct {
	Kind        SettlementKind
	Reference   string
	ExternalRef string // gateway-assigned id (charge id / transfer code)
	EventID     string // external event id, for the audit trail
	Event       string // raw event or status name as reported
	Source      string
}

// PaymentKindForStatus maps a gateway charge status to a settlement kind.
// The second return is false for non-terminal or unrecognized statuses.
func PaymentKindForStatus(status string) (SettlementKind, bool) {
	switch status {
	case GatewayStatusSuccess:
		return SettlePaymentSuccess, true
	case GatewayStatusFailed:
		return SettlePaymentFailure, true
	default:
		return "", false
	}
}

// PayoutKindForStatus maps a gateway transfer status to a settlement kind.
func PayoutKindForStatus(status string) (SettlementKind, bool) {
	switch status {
	case GatewayStatusSuccess:
		return SettlePayoutSuccess, true
	case GatewayStatusFailed:
		return SettlePayoutFailure, true
	default:
		return "", false
	}
}

func (k SettlementKind) transactionType() models.TransactionType {
	if k == SettlePayoutSuccess || k == SettlePayoutFailure {
		return models.TransactionTypePayout
	}
	return models.TransactionTypePayment
}

func (k SettlementKind) terminalStatus() models.TransactionStatus {
	if k == SettlePaymentSuccess || k == SettlePayoutSuccess {
		return models.TransactionStatusSuccess
	}
	return models.TransactionStatusFailed
}

// SettlementService transitions ledger entries from pending to a terminal
// state and applies the corresponding wallet mutation exactly once. It is
// the single code path for every settlement signal.
type SettlementService struct {
	db     *db.DB
	logger *slog.Logger
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(database *db.DB, logger *slog.Logger) *SettlementService {
	return &SettlementService{
		db:     database,
		logger: logger,
	}
}

// Resolve applies one settlement signal inside a single database
// transaction. Signals for unknown references and signals for entries
// already in a terminal state are acknowledged without effect; the first
// terminal transition wins. A failure partway persists nothing, so the
// signal is safely retryable.
func (s *SettlementService) Resolve(ctx context.Context, sig Signal) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return internalError("start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	txTransactionRepo := repository.NewTransactionRepository(tx)
	txWalletRepo := repository.NewWalletRepository(tx)

	if err := s.performResolve(ctx, txTransactionRepo, txWalletRepo, sig); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return internalError("commit transaction", err)
	}

	return nil
}

// performResolve contains the transition logic: lock the entry, detect
// replays, record the signal in the audit trail, then branch on the
// explicit settlement kind to decide the wallet effect.
func (s *SettlementService) performResolve(
	ctx context.Context,
	transactionRepo repository.TransactionRepository,
	walletRepo repository.WalletRepository,
	sig Signal,
) error {
	txn, err := s.lookupEntry(ctx, transactionRepo, sig)
	if err != nil {
		return err
	}
	if txn == nil {
		// Not fatal: the counterparty may emit events for references this
		// deployment does not own.
		s.logger.Warn("settlement signal for unknown entry",
			"reference", sig.Reference,
			"external_ref", sig.ExternalRef,
			"event", sig.Event,
		)
		return nil
	}

	if txn.Type != sig.Kind.transactionType() {
		s.logger.Warn("settlement signal kind does not match entry type",
			"reference", txn.Reference,
			"entry_type", txn.Type,
			"kind", sig.Kind,
		)
		return nil
	}

	if txn.Status.Terminal() {
		s.logger.Debug("settlement signal for already-terminal entry",
			"reference", txn.Reference,
			"status", txn.Status,
			"event", sig.Event,
		)
		return nil
	}

	txn.AppendAuditEvent(map[string]any{
		"event":       sig.Event,
		"kind":        string(sig.Kind),
		"payload_id":  sig.EventID,
		"source":      sig.Source,
		"received_at": time.Now().UTC().Format(time.RFC3339),
	})
	if sig.Source == SignalSourceReconcile {
		txn.Meta[models.MetaReconciledAt] = time.Now().UTC().Format(time.RFC3339)
	}

	txn.Status = sig.Kind.terminalStatus()
	if sig.ExternalRef != "" {
		externalRef := sig.ExternalRef
		txn.ExternalRef = &externalRef
	}

	if err := s.applyWalletEffect(ctx, walletRepo, txn, sig.Kind); err != nil {
		return err
	}

	if err := transactionRepo.Update(ctx, txn); err != nil {
		return internalError("persist settlement", err)
	}

	s.logger.Info("settled ledger entry",
		"reference", txn.Reference,
		"kind", sig.Kind,
		"status", txn.Status,
		"amount", txn.Amount,
		"source", sig.Source,
	)

	return nil
}

// applyWalletEffect performs the kind-specific balance mutation:
//
//	payment success → credit the designated credit wallet
//	payment failure → nothing (funds were never held)
//	payout success  → nothing (the withdrawal hold is the debit)
//	payout failure  → reverse the hold (credit the debit wallet)
func (s *SettlementService) applyWalletEffect(
	ctx context.Context,
	walletRepo repository.WalletRepository,
	txn *models.Transaction,
	kind SettlementKind,
) error {
	var creditWalletID *int64
	creditAmount := txn.Amount

	switch kind {
	case SettlePaymentSuccess:
		creditWalletID = txn.CrWalletID
		if creditWalletID == nil {
			if id, ok := metaWalletID(txn.Meta); ok {
				creditWalletID = &id
			}
		}
	case SettlePayoutFailure:
		// The hold debited amount plus fee; the whole hold comes back.
		creditWalletID = txn.DrWalletID
		creditAmount = creditAmount.Add(metaFee(txn.Meta))
	case SettlePaymentFailure, SettlePayoutSuccess:
		return nil
	}

	if creditWalletID == nil {
		s.logger.Warn("settlement has no wallet to credit",
			"reference", txn.Reference,
			"kind", kind,
		)
		return nil
	}

	wallet, err := walletRepo.FindByIDForUpdate(ctx, *creditWalletID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Warn("settlement credit wallet not found",
				"reference", txn.Reference,
				"wallet_id", *creditWalletID,
			)
			return nil
		}
		return internalError("lock wallet", err)
	}

	if err := walletRepo.AdjustBalance(ctx, wallet.ID, creditAmount); err != nil {
		return internalError("credit wallet", err)
	}

	return nil
}

// lookupEntry locks the ledger entry a signal refers to. Transfer signals
// may carry only the gateway transfer code, so payout kinds fall back to an
// external_ref lookup. A nil, nil return means no matching entry.
func (s *SettlementService) lookupEntry(
	ctx context.Context,
	transactionRepo repository.TransactionRepository,
	sig Signal,
) (*models.Transaction, error) {
	if sig.Reference != "" {
		txn, err := transactionRepo.FindByReferenceForUpdate(ctx, sig.Reference)
		if err == nil {
			return txn, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, internalError("look up entry by reference", err)
		}
	}

	payoutKind := sig.Kind == SettlePayoutSuccess || sig.Kind == SettlePayoutFailure
	if payoutKind && sig.ExternalRef != "" {
		txn, err := transactionRepo.FindByExternalRefForUpdate(ctx, sig.ExternalRef)
		if err == nil {
			return txn, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, internalError("look up entry by external ref", err)
		}
	}

	return nil, nil
}

func metaWalletID(meta map[string]any) (int64, bool) {
	if meta == nil {
		return 0, false
	}
	switch v := meta[models.MetaWalletID].(type) {
	case float64: // JSON numbers decode as float64
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// metaFee reads the flat fee recorded on a payout entry. Zero when absent
// or unparseable; the refund then covers at least the net amount.
func metaFee(meta map[string]any) decimal.Decimal {
	if meta == nil {
		return decimal.Zero
	}
	raw, ok := meta[models.MetaFee].(string)
	if !ok {
		return decimal.Zero
	}
	fee, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return fee
}

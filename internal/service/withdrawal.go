package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/TheRightGift/coolpayServer/internal/config"
	"github.com/TheRightGift/coolpayServer/internal/db"
	"github.com/TheRightGift/coolpayServer/internal/models"
	"github.com/TheRightGift/coolpayServer/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var accountNumberPattern = regexp.MustCompile(`^\d{10}$`)

// WithdrawalRequest carries the user-supplied payout details.
type WithdrawalRequest struct {
	Amount        decimal.Decimal
	BankCode      string
	BankName      string
	AccountNumber string
	AccountName   string
}

// WithdrawalResult is the outcome of an accepted withdrawal. The entry is
// pending until the gateway confirms or rejects the transfer.
type WithdrawalResult struct {
	Reference     string
	Status        models.TransactionStatus
	Amount        decimal.Decimal
	Fee           decimal.Decimal
	Total         decimal.Decimal
	TransactionID int64
	Replayed      bool
}

// WithdrawalService moves wallet funds out to a bank account. The hold
// (debit of amount plus fee) and the pending payout entry commit in one
// transaction before any gateway call; if the gateway rejects the transfer
// the hold is released in a compensating transaction.
type WithdrawalService struct {
	db        *db.DB
	gateway   Gateway
	logger    *slog.Logger
	fee       decimal.Decimal
	minAmount decimal.Decimal
}

// NewWithdrawalService creates a new WithdrawalService
func NewWithdrawalService(database *db.DB, gateway Gateway, cfg config.WithdrawalConfig, logger *slog.Logger) *WithdrawalService {
	return &WithdrawalService{
		db:        database,
		gateway:   gateway,
		logger:    logger,
		fee:       cfg.Fee,
		minAmount: cfg.MinAmount,
	}
}

// Withdraw places a hold for the requested amount plus the flat fee and
// initiates a bank transfer for the net amount.
func (s *WithdrawalService) Withdraw(
	ctx context.Context,
	userID int64,
	req WithdrawalRequest,
	idempotencyKey string,
) (*WithdrawalResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	result, txn, err := s.placeHold(ctx, userID, req, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if result.Replayed {
		return result, nil
	}

	transferCode, err := s.executeTransfer(ctx, req, txn)
	if err != nil {
		if compErr := s.releaseHold(ctx, txn, result.Total, err); compErr != nil {
			s.logger.Error("hold release failed",
				"reference", txn.Reference,
				"error", compErr,
			)
			return nil, internalError("release hold", compErr)
		}
		return nil, &ServiceError{
			Code:    ErrCodeUpstreamUnavailable,
			Message: "transfer could not be initiated",
			Err:     err,
		}
	}

	if err := repository.NewTransactionRepository(s.db).SetExternalRef(ctx, txn.ID, transferCode); err != nil {
		// The transfer is in flight; the sweeper cannot verify it without
		// the code, but a transfer webhook still resolves by reference.
		s.logger.Error("recording transfer code failed",
			"reference", txn.Reference,
			"transfer_code", transferCode,
			"error", err,
		)
	}

	s.logger.Info("withdrawal initiated",
		"reference", txn.Reference,
		"amount", result.Amount,
		"fee", result.Fee,
		"transfer_code", transferCode,
	)

	return result, nil
}

func (s *WithdrawalService) validate(req WithdrawalRequest) error {
	if req.Amount.LessThan(s.minAmount) {
		return &ServiceError{
			Code:    ErrCodeValidation,
			Message: fmt.Sprintf("minimum withdrawal is %s", s.minAmount),
		}
	}
	if !accountNumberPattern.MatchString(req.AccountNumber) {
		return &ServiceError{Code: ErrCodeValidation, Message: "account number must be 10 digits"}
	}
	if req.BankCode == "" {
		return &ServiceError{Code: ErrCodeValidation, Message: "bank code is required"}
	}
	if req.AccountName == "" {
		return &ServiceError{Code: ErrCodeValidation, Message: "account name is required"}
	}
	return nil
}

// placeHold debits amount plus fee and records the pending payout entry
// atomically. Two duplicates racing past the lookup collide on the unique
// key index; the loser re-runs and replays the winner's entry.
func (s *WithdrawalService) placeHold(
	ctx context.Context,
	userID int64,
	req WithdrawalRequest,
	idempotencyKey string,
) (*WithdrawalResult, *models.Transaction, error) {
	result, txn, err := s.placeHoldOnce(ctx, userID, req, idempotencyKey)
	if errors.Is(err, models.ErrDuplicateIdempotencyKey) {
		result, txn, err = s.placeHoldOnce(ctx, userID, req, idempotencyKey)
	}
	return result, txn, err
}

func (s *WithdrawalService) placeHoldOnce(
	ctx context.Context,
	userID int64,
	req WithdrawalRequest,
	idempotencyKey string,
) (*WithdrawalResult, *models.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, nil, internalError("start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	result, txn, err := s.performHold(ctx,
		repository.NewWalletRepository(tx),
		repository.NewTransactionRepository(tx),
		repository.NewBankDetailRepository(tx),
		userID, req, idempotencyKey,
	)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, internalError("commit transaction", err)
	}
	return result, txn, nil
}

// performHold contains the balance check, the debit and the pending entry
// insert. The balance check and the debit see the same locked row.
func (s *WithdrawalService) performHold(
	ctx context.Context,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	bankDetailRepo repository.BankDetailRepository,
	userID int64,
	req WithdrawalRequest,
	idempotencyKey string,
) (*WithdrawalResult, *models.Transaction, error) {
	if idempotencyKey != "" {
		existing, err := transactionRepo.FindByIdempotencyKey(ctx, repository.IdempotencyQuery{
			InitiatorUserID: &userID,
			Type:            models.TransactionTypePayout,
			RefPrefix:       models.RefPrefixWithdrawal,
			Key:             idempotencyKey,
		})
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, nil, internalError("check idempotency key", err)
		}
		if existing != nil {
			// Replay the outcome as it was recorded; the configured fee
			// may have changed since the original call.
			fee := metaFee(existing.Meta)
			return &WithdrawalResult{
				Reference:     existing.Reference,
				TransactionID: existing.ID,
				Status:        existing.Status,
				Amount:        existing.Amount,
				Fee:           fee,
				Total:         existing.Amount.Add(fee),
				Replayed:      true,
			}, existing, nil
		}
	}

	if idempotencyKey == "" {
		// No client key; stamp a server-generated one so the stored entry
		// is still individually addressable.
		idempotencyKey = uuid.NewString()
	}

	wallet, err := walletRepo.FindByUserIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil, &ServiceError{Code: ErrCodeWalletNotFound, Message: "wallet not found"}
		}
		return nil, nil, internalError("find wallet", err)
	}

	total := req.Amount.Add(s.fee)
	if wallet.Balance.LessThan(total) {
		return nil, nil, &ServiceError{
			Code: ErrCodeInsufficientFunds,
			Message: fmt.Sprintf(
				"Insufficient balance. You need ₦%s (including ₦%s fee)",
				total, s.fee,
			),
		}
	}

	if err := bankDetailRepo.Upsert(ctx, &models.BankDetail{
		UserID:        userID,
		BankName:      req.BankName,
		BankCode:      req.BankCode,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
	}); err != nil {
		return nil, nil, internalError("save bank details", err)
	}

	if err := walletRepo.AdjustBalance(ctx, wallet.ID, total.Neg()); err != nil {
		return nil, nil, internalError("debit wallet", err)
	}

	txn := &models.Transaction{
		Reference:       NewReference(models.RefPrefixWithdrawal),
		DrWalletID:      &wallet.ID,
		Amount:          req.Amount,
		Type:            models.TransactionTypePayout,
		Status:          models.TransactionStatusPending,
		InitiatorUserID: &userID,
		Description:     fmt.Sprintf("Withdrawal to %s (%s)", req.AccountName, req.BankName),
		Meta: map[string]any{
			models.MetaDirection:      "payout",
			models.MetaFee:            s.fee.String(),
			models.MetaNet:            req.Amount.String(),
			models.MetaBank:           req.BankName,
			models.MetaIdempotencyKey: idempotencyKey,
		},
	}
	if err := transactionRepo.Create(ctx, txn); err != nil {
		return nil, nil, internalError("create ledger entry", err)
	}

	return &WithdrawalResult{
		Reference:     txn.Reference,
		TransactionID: txn.ID,
		Status:        txn.Status,
		Amount:        req.Amount,
		Fee:           s.fee,
		Total:         total,
	}, txn, nil
}

// executeTransfer runs the gateway sequence: recipient, balance check,
// transfer. Only the net amount moves out; the fee stays held.
func (s *WithdrawalService) executeTransfer(ctx context.Context, req WithdrawalRequest, txn *models.Transaction) (string, error) {
	recipientCode, err := s.gateway.CreateTransferRecipient(ctx, RecipientIntent{
		Name:          req.AccountName,
		AccountNumber: req.AccountNumber,
		BankCode:      req.BankCode,
	})
	if err != nil {
		return "", fmt.Errorf("create transfer recipient: %w", err)
	}

	available, err := s.gateway.CheckAvailableBalance(ctx)
	if err != nil {
		return "", fmt.Errorf("check gateway balance: %w", err)
	}
	if available.LessThan(txn.Amount) {
		return "", fmt.Errorf("gateway balance %s below transfer amount %s", available, txn.Amount)
	}

	transferCode, err := s.gateway.InitiateTransfer(ctx, TransferIntent{
		Amount:        txn.Amount,
		RecipientCode: recipientCode,
		Reference:     txn.Reference,
		Reason:        txn.Description,
	})
	if err != nil {
		return "", fmt.Errorf("initiate transfer: %w", err)
	}

	return transferCode, nil
}

// releaseHold refunds the held total and marks the entry failed. It runs in
// its own transaction because the hold already committed.
func (s *WithdrawalService) releaseHold(ctx context.Context, txn *models.Transaction, total decimal.Decimal, cause error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	if err := s.performRelease(ctx,
		repository.NewWalletRepository(tx),
		repository.NewTransactionRepository(tx),
		txn, total, cause,
	); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Warn("withdrawal hold released",
		"reference", txn.Reference,
		"total", total,
		"cause", cause,
	)
	return nil
}

// performRelease refunds the held total and marks the entry failed, unless
// a settlement signal already resolved it.
func (s *WithdrawalService) performRelease(
	ctx context.Context,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	txn *models.Transaction,
	total decimal.Decimal,
	cause error,
) error {
	locked, err := transactionRepo.FindByReferenceForUpdate(ctx, txn.Reference)
	if err != nil {
		return fmt.Errorf("lock ledger entry: %w", err)
	}
	if locked.Status.Terminal() {
		// A settlement signal beat us to it; nothing left to release.
		return nil
	}

	if _, err := walletRepo.FindByIDForUpdate(ctx, *txn.DrWalletID); err != nil {
		return fmt.Errorf("lock wallet: %w", err)
	}
	if err := walletRepo.AdjustBalance(ctx, *txn.DrWalletID, total); err != nil {
		return fmt.Errorf("refund wallet: %w", err)
	}

	locked.Status = models.TransactionStatusFailed
	if locked.Meta == nil {
		locked.Meta = map[string]any{}
	}
	locked.Meta[models.MetaFailureReason] = cause.Error()
	if err := transactionRepo.Update(ctx, locked); err != nil {
		return fmt.Errorf("mark entry failed: %w", err)
	}

	return nil
}

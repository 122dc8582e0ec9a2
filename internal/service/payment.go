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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Counterparty identifies the receiving side of a payment.
type Counterparty struct {
	Name     string
	ID       int64
	WalletID int64
}

// LinkDetails is the public view of a payment link returned by Prepare.
type LinkDetails struct {
	ExpiresAt *time.Time
	Amount    *decimal.Decimal
	Token     string
	Memo      string
	Status    models.PaymentLinkStatus
	Receiver  Counterparty
}

// PaymentResult is the outcome of an internal transfer. On an idempotent
// replay only Reference, TransactionID and Status are populated.
type PaymentResult struct {
	Reference       string
	Status          models.TransactionStatus
	Amount          decimal.Decimal
	SenderBalance   decimal.Decimal
	ReceiverBalance decimal.Decimal
	Receiver        Counterparty
	TransactionID   int64
	Replayed        bool
}

// PaymentService executes wallet-to-wallet transfers against payment
// links. Internal transfers need no external confirmation and settle
// synchronously.
type PaymentService struct {
	db     *db.DB
	logger *slog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(database *db.DB, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		db:     database,
		logger: logger,
	}
}

// Prepare returns the public details of an active payment link.
func (s *PaymentService) Prepare(ctx context.Context, token string) (*LinkDetails, error) {
	linkRepo := repository.NewPaymentLinkRepository(s.db)
	link, err := linkRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeLinkInvalid, Message: "invalid or expired link"}
		}
		return nil, internalError("find payment link", err)
	}
	if !link.IsActive() {
		return nil, &ServiceError{Code: ErrCodeLinkInvalid, Message: "invalid or expired link"}
	}

	receiver, err := repository.NewUserRepository(s.db).FindByID(ctx, link.UserID)
	if err != nil {
		return nil, internalError("find link owner", err)
	}

	return &LinkDetails{
		Token:     link.Token,
		Amount:    link.Amount,
		Memo:      link.Memo,
		ExpiresAt: link.ExpiresAt,
		Status:    link.Status,
		Receiver: Counterparty{
			ID:       receiver.ID,
			Name:     receiver.Name,
			WalletID: link.WalletID,
		},
	}, nil
}

// Execute performs an internal transfer from the caller's wallet to the
// wallet behind a payment link. The link-fixed amount wins over the
// caller-supplied one. The checks, ledger insert, debit and credit commit
// or roll back as one unit.
func (s *PaymentService) Execute(
	ctx context.Context,
	userID int64,
	token string,
	amount *decimal.Decimal,
	idempotencyKey string,
) (*PaymentResult, error) {
	result, err := s.executeOnce(ctx, userID, token, amount, idempotencyKey)
	if errors.Is(err, models.ErrDuplicateIdempotencyKey) {
		// A concurrent duplicate won the insert race; the re-run's
		// idempotency lookup replays its entry.
		result, err = s.executeOnce(ctx, userID, token, amount, idempotencyKey)
	}
	return result, err
}

func (s *PaymentService) executeOnce(
	ctx context.Context,
	userID int64,
	token string,
	amount *decimal.Decimal,
	idempotencyKey string,
) (*PaymentResult, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError("start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	result, err := s.performExecute(ctx,
		repository.NewPaymentLinkRepository(tx),
		repository.NewWalletRepository(tx),
		repository.NewTransactionRepository(tx),
		repository.NewUserRepository(tx),
		userID, token, amount, idempotencyKey,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("commit transaction", err)
	}

	return result, nil
}

// performExecute contains the core transfer logic. Locks are taken in the
// fixed global order: link row, then payer wallet, then payee wallet.
func (s *PaymentService) performExecute(
	ctx context.Context,
	linkRepo repository.PaymentLinkRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	userID int64,
	token string,
	amount *decimal.Decimal,
	idempotencyKey string,
) (*PaymentResult, error) {
	link, err := linkRepo.FindByTokenForUpdate(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeLinkInvalid, Message: "invalid or expired link"}
		}
		return nil, internalError("lock payment link", err)
	}
	if !link.IsActive() {
		return nil, &ServiceError{Code: ErrCodeLinkInvalid, Message: "invalid or expired link"}
	}

	if idempotencyKey != "" {
		existing, err := transactionRepo.FindByIdempotencyKey(ctx, repository.IdempotencyQuery{
			InitiatorUserID: &userID,
			Type:            models.TransactionTypePayment,
			RefPrefix:       models.RefPrefixPayment,
			Key:             idempotencyKey,
		})
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, internalError("check idempotency key", err)
		}
		if existing != nil {
			return &PaymentResult{
				Reference:     existing.Reference,
				TransactionID: existing.ID,
				Status:        existing.Status,
				Amount:        existing.Amount,
				Replayed:      true,
			}, nil
		}
	}

	if idempotencyKey == "" {
		// No client key; stamp a server-generated one so the stored entry
		// is still individually addressable.
		idempotencyKey = uuid.NewString()
	}

	payAmount, err := resolveLinkAmount(link, amount)
	if err != nil {
		return nil, err
	}

	senderWallet, err := walletRepo.FindByUserIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeWalletNotFound, Message: "sender wallet not found"}
		}
		return nil, internalError("lock sender wallet", err)
	}

	if senderWallet.ID == link.WalletID {
		return nil, &ServiceError{Code: ErrCodeSelfPayment, Message: "cannot pay yourself"}
	}

	if senderWallet.Balance.LessThan(payAmount) {
		return nil, &ServiceError{Code: ErrCodeInsufficientFunds, Message: "insufficient funds"}
	}

	reference := NewReference(models.RefPrefixPayment)
	txn := &models.Transaction{
		Reference:       reference,
		DrWalletID:      &senderWallet.ID,
		CrWalletID:      &link.WalletID,
		Amount:          payAmount,
		Type:            models.TransactionTypePayment,
		Status:          models.TransactionStatusSuccess,
		InitiatorUserID: &userID,
		Description:     link.Memo,
		Meta: map[string]any{
			models.MetaPaymentLinkID:  link.ID,
			models.MetaSource:         "app-execute",
			models.MetaDirection:      "user_payment",
			models.MetaIdempotencyKey: idempotencyKey,
		},
	}

	if err := transactionRepo.Create(ctx, txn); err != nil {
		return nil, internalError("create ledger entry", err)
	}

	if err := walletRepo.AdjustBalance(ctx, senderWallet.ID, payAmount.Neg()); err != nil {
		return nil, internalError("debit sender wallet", err)
	}

	receiverWallet, err := walletRepo.FindByIDForUpdate(ctx, link.WalletID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeWalletNotFound, Message: "receiver wallet not found"}
		}
		return nil, internalError("lock receiver wallet", err)
	}

	if err := walletRepo.AdjustBalance(ctx, receiverWallet.ID, payAmount); err != nil {
		return nil, internalError("credit receiver wallet", err)
	}

	receiver, err := userRepo.FindByID(ctx, link.UserID)
	if err != nil {
		return nil, internalError("find receiver", err)
	}

	s.logger.Info("internal transfer settled",
		"reference", reference,
		"amount", payAmount,
		"sender_wallet", senderWallet.ID,
		"receiver_wallet", receiverWallet.ID,
		"initiator", userID,
	)

	return &PaymentResult{
		Reference:       reference,
		TransactionID:   txn.ID,
		Status:          models.TransactionStatusSuccess,
		Amount:          payAmount,
		SenderBalance:   senderWallet.Balance.Sub(payAmount),
		ReceiverBalance: receiverWallet.Balance.Add(payAmount),
		Receiver: Counterparty{
			ID:       receiver.ID,
			Name:     receiver.Name,
			WalletID: receiverWallet.ID,
		},
	}, nil
}

// resolveLinkAmount picks the effective amount: the link-fixed amount wins,
// then the caller-supplied one.
func resolveLinkAmount(link *models.PaymentLink, requested *decimal.Decimal) (decimal.Decimal, error) {
	amount := link.Amount
	if amount == nil {
		amount = requested
	}
	if amount == nil || amount.Sign() <= 0 {
		return decimal.Zero, &ServiceError{Code: ErrCodeAmountRequired, Message: "amount required"}
	}
	return *amount, nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/TheRightGift/coolpayServer/internal/config"
	"github.com/TheRightGift/coolpayServer/internal/db"
	"github.com/TheRightGift/coolpayServer/internal/models"
	"github.com/TheRightGift/coolpayServer/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutPayer is the contact information of an external payer.
type CheckoutPayer struct {
	Email string
	Name  string
	Phone string
}

// DepositResult is the outcome of a deposit or checkout initialization.
// AuthorizationURL/AccessCode are empty on an idempotent replay and when
// the gateway could not be reached (the entry stays pending for later
// resolution).
type DepositResult struct {
	Reference        string
	AuthorizationURL string
	AccessCode       string
	Status           models.TransactionStatus
	TransactionID    int64
	Replayed         bool
}

// DepositService initializes externally-settled inflows: authenticated
// wallet top-ups (DEP-) and public link checkouts (WEB-). Both create a
// pending entry with no debit side and no wallet effect; the credit happens
// only when a settlement signal arrives.
type DepositService struct {
	db          *db.DB
	gateway     Gateway
	logger      *slog.Logger
	minAmount   decimal.Decimal
	callbackURL string
}

// NewDepositService creates a new DepositService
func NewDepositService(database *db.DB, gateway Gateway, cfg config.DepositConfig, callbackURL string, logger *slog.Logger) *DepositService {
	return &DepositService{
		db:          database,
		gateway:     gateway,
		logger:      logger,
		minAmount:   cfg.MinAmount,
		callbackURL: callbackURL,
	}
}

// Init initializes an authenticated deposit that will credit the caller's
// own wallet once the gateway confirms the charge.
func (s *DepositService) Init(
	ctx context.Context,
	userID int64,
	amount decimal.Decimal,
	email string,
	idempotencyKey string,
) (*DepositResult, error) {
	if amount.LessThan(s.minAmount) {
		return nil, &ServiceError{
			Code:    ErrCodeValidation,
			Message: fmt.Sprintf("amount must be at least %s", s.minAmount),
		}
	}

	user, err := repository.NewUserRepository(s.db).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeNotFound, Message: "user not found"}
		}
		return nil, internalError("find user", err)
	}
	if email == "" {
		email = user.Email
	}

	wallet, err := repository.NewWalletRepository(s.db).FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeWalletNotFound, Message: "wallet not found"}
		}
		return nil, internalError("find wallet", err)
	}

	txn, replayed, err := s.createPendingEntry(ctx, pendingEntry{
		refPrefix:       models.RefPrefixDeposit,
		crWalletID:      wallet.ID,
		amount:          amount,
		initiatorUserID: &userID,
		description:     "Wallet deposit",
		idempotencyKey:  idempotencyKey,
		meta: map[string]any{
			models.MetaDirection: "deposit_funding",
			models.MetaUserID:    userID,
			models.MetaWalletID:  wallet.ID,
			models.MetaSource:    "deposit-init",
		},
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		return &DepositResult{
			Reference:     txn.Reference,
			TransactionID: txn.ID,
			Status:        txn.Status,
			Replayed:      true,
		}, nil
	}

	return s.initializeCharge(ctx, txn, email)
}

// Checkout initializes a public hosted-checkout payment against a payment
// link. The resulting charge credits the wallet behind the link.
func (s *DepositService) Checkout(
	ctx context.Context,
	token string,
	amount *decimal.Decimal,
	payer CheckoutPayer,
	idempotencyKey string,
) (*DepositResult, error) {
	if payer.Email == "" {
		return nil, &ServiceError{Code: ErrCodeValidation, Message: "payer email is required"}
	}

	link, err := repository.NewPaymentLinkRepository(s.db).FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeLinkInvalid, Message: "invalid or expired link"}
		}
		return nil, internalError("find payment link", err)
	}
	if !link.IsActive() {
		return nil, &ServiceError{Code: ErrCodeLinkInvalid, Message: "invalid or expired link"}
	}

	chargeAmount, err := resolveLinkAmount(link, amount)
	if err != nil {
		return nil, err
	}

	txn, replayed, err := s.createPendingEntry(ctx, pendingEntry{
		refPrefix:      models.RefPrefixCheckout,
		crWalletID:     link.WalletID,
		amount:         chargeAmount,
		description:    link.Memo,
		idempotencyKey: idempotencyKey,
		meta: map[string]any{
			models.MetaPaymentLinkID: link.ID,
			models.MetaWalletID:      link.WalletID,
			models.MetaPayerEmail:    payer.Email,
			models.MetaPayerName:     payer.Name,
			models.MetaPayerPhone:    payer.Phone,
			models.MetaSource:        "web-checkout",
			models.MetaDirection:     "user_payment",
		},
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		return &DepositResult{
			Reference:     txn.Reference,
			TransactionID: txn.ID,
			Status:        txn.Status,
			Replayed:      true,
		}, nil
	}

	return s.initializeCharge(ctx, txn, payer.Email)
}

type pendingEntry struct {
	meta            map[string]any
	initiatorUserID *int64
	refPrefix       string
	description     string
	idempotencyKey  string
	amount          decimal.Decimal
	crWalletID      int64
}

// createPendingEntry runs the idempotency lookup and the ledger insert in
// one transaction. The entry carries the idempotency key before any
// external call is made. Two duplicates racing past the lookup collide on
// the unique key index; the loser re-runs and replays the winner's entry.
func (s *DepositService) createPendingEntry(ctx context.Context, entry pendingEntry) (*models.Transaction, bool, error) {
	txn, replayed, err := s.createPendingEntryOnce(ctx, entry)
	if errors.Is(err, models.ErrDuplicateIdempotencyKey) {
		txn, replayed, err = s.createPendingEntryOnce(ctx, entry)
	}
	return txn, replayed, err
}

func (s *DepositService) createPendingEntryOnce(ctx context.Context, entry pendingEntry) (*models.Transaction, bool, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, false, internalError("start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	txn, replayed, err := s.performCreateEntry(ctx, repository.NewTransactionRepository(tx), entry)
	if err != nil {
		return nil, false, err
	}
	if !replayed {
		if err := tx.Commit(); err != nil {
			return nil, false, internalError("commit transaction", err)
		}
	}
	return txn, replayed, nil
}

// performCreateEntry contains the idempotency check and insert.
func (s *DepositService) performCreateEntry(
	ctx context.Context,
	transactionRepo repository.TransactionRepository,
	entry pendingEntry,
) (*models.Transaction, bool, error) {
	if entry.idempotencyKey != "" {
		existing, err := transactionRepo.FindByIdempotencyKey(ctx, repository.IdempotencyQuery{
			InitiatorUserID: entry.initiatorUserID,
			Type:            models.TransactionTypePayment,
			RefPrefix:       entry.refPrefix,
			Key:             entry.idempotencyKey,
		})
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, false, internalError("check idempotency key", err)
		}
		if existing != nil {
			return existing, true, nil
		}
	}

	key := entry.idempotencyKey
	if key == "" {
		// No client key; stamp a server-generated one so the stored entry
		// is still individually addressable.
		key = uuid.NewString()
	}
	meta := entry.meta
	meta[models.MetaIdempotencyKey] = key

	txn := &models.Transaction{
		Reference:       NewReference(entry.refPrefix),
		CrWalletID:      &entry.crWalletID,
		Amount:          entry.amount,
		Type:            models.TransactionTypePayment,
		Status:          models.TransactionStatusPending,
		InitiatorUserID: entry.initiatorUserID,
		Description:     entry.description,
		Meta:            meta,
	}

	if err := transactionRepo.Create(ctx, txn); err != nil {
		return nil, false, internalError("create ledger entry", err)
	}

	return txn, false, nil
}

// initializeCharge asks the gateway for a hosted-checkout session. A
// gateway failure leaves the entry pending. No funds are held for inflows,
// so there is nothing to compensate; the sweeper resolves it later.
func (s *DepositService) initializeCharge(ctx context.Context, txn *models.Transaction, email string) (*DepositResult, error) {
	auth, err := s.gateway.InitializeCharge(ctx, ChargeIntent{
		Amount:      txn.Amount,
		Email:       email,
		Reference:   txn.Reference,
		CallbackURL: s.callbackURL,
		Metadata:    txn.Meta,
	})
	if err != nil {
		s.logger.Error("charge initialization failed",
			"reference", txn.Reference,
			"amount", txn.Amount,
			"error", err,
		)
		return nil, &ServiceError{
			Code:    ErrCodeUpstreamUnavailable,
			Message: "payment gateway unavailable",
			Err:     err,
		}
	}

	s.logger.Info("charge initialized",
		"reference", txn.Reference,
		"amount", txn.Amount,
	)

	return &DepositResult{
		Reference:        txn.Reference,
		TransactionID:    txn.ID,
		Status:           txn.Status,
		AuthorizationURL: auth.AuthorizationURL,
		AccessCode:       auth.AccessCode,
	}, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/TheRightGift/coolpayServer/internal/db"
	"github.com/TheRightGift/coolpayServer/internal/models"
	"github.com/TheRightGift/coolpayServer/internal/repository"
	"github.com/shopspring/decimal"
)

// BalanceSnapshot is the wallet state returned to the owner.
type BalanceSnapshot struct {
	Balance  decimal.Decimal
	WalletID int64
}

// WalletService serves owner-facing wallet reads. Balances come straight
// from the stored column; the ledger is the audit trail, not the source of
// the figure.
type WalletService struct {
	db      *db.DB
	gateway Gateway
	logger  *slog.Logger
}

// NewWalletService creates a new WalletService
func NewWalletService(database *db.DB, gateway Gateway, logger *slog.Logger) *WalletService {
	return &WalletService{db: database, gateway: gateway, logger: logger}
}

// Balance returns the caller's current wallet balance.
func (s *WalletService) Balance(ctx context.Context, userID int64) (*BalanceSnapshot, error) {
	wallet, err := repository.NewWalletRepository(s.db).FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeWalletNotFound, Message: "wallet not found"}
		}
		return nil, internalError("find wallet", err)
	}
	return &BalanceSnapshot{WalletID: wallet.ID, Balance: wallet.Balance}, nil
}

// History returns the caller's ledger entries, newest first.
func (s *WalletService) History(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error) {
	wallet, err := repository.NewWalletRepository(s.db).FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeWalletNotFound, Message: "wallet not found"}
		}
		return nil, internalError("find wallet", err)
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	entries, err := repository.NewTransactionRepository(s.db).ListByWallet(ctx, wallet.ID, limit)
	if err != nil {
		return nil, internalError("list transactions", err)
	}
	return entries, nil
}

// Banks proxies the gateway's supported bank list.
func (s *WalletService) Banks(ctx context.Context) ([]Bank, error) {
	banks, err := s.gateway.ListBanks(ctx)
	if err != nil {
		s.logger.Error("bank list fetch failed", "error", err)
		return nil, &ServiceError{
			Code:    ErrCodeUpstreamUnavailable,
			Message: "bank list unavailable",
			Err:     err,
		}
	}
	return banks, nil
}

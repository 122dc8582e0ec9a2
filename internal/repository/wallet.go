// Package repository provides the data access layer for the wallet ledger.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TheRightGift/coolpayServer/internal/db"
	"github.com/TheRightGift/coolpayServer/internal/models"
	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data access
type WalletRepository interface {
	FindByUserID(ctx context.Context, userID int64) (*models.Wallet, error)
	FindByUserIDForUpdate(ctx context.Context, userID int64) (*models.Wallet, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*models.Wallet, error)
	AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) error
}

// walletRepository implements WalletRepository
type walletRepository struct {
	q db.Queryer
}

// NewWalletRepository creates a new WalletRepository bound to a connection
// pool or an open transaction.
func NewWalletRepository(q db.Queryer) WalletRepository {
	return &walletRepository{q: q}
}

const walletColumns = `id, user_id, balance, created_at, updated_at`

// FindByUserID retrieves a wallet by its owning user without locking it.
func (r *walletRepository) FindByUserID(ctx context.Context, userID int64) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	return r.scanWallet(ctx, query, userID)
}

// FindByUserIDForUpdate retrieves a wallet by its owning user under an
// exclusive row lock. Must be called inside a transaction.
func (r *walletRepository) FindByUserIDForUpdate(ctx context.Context, userID int64) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 FOR UPDATE`
	return r.scanWallet(ctx, query, userID)
}

// FindByIDForUpdate retrieves a wallet by id under an exclusive row lock.
// Must be called inside a transaction.
func (r *walletRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`
	return r.scanWallet(ctx, query, id)
}

// AdjustBalance applies a signed delta to a wallet balance. The caller must
// hold the wallet row lock; the delta form keeps the mutation a single
// statement so no stale read can be written back.
func (r *walletRepository) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) error {
	query := `
		UPDATE wallets
		SET balance = balance + $2,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust wallet balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *walletRepository) scanWallet(ctx context.Context, query string, arg any) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.q.QueryRowContext(ctx, query, arg).Scan(
		&wallet.ID,
		&wallet.UserID,
		&wallet.Balance,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}

	return &wallet, nil
}

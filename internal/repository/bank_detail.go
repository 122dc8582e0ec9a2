package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TheRightGift/coolpayServer/internal/db"
	"github.com/TheRightGift/coolpayServer/internal/models"
)

// BankDetailRepository defines the interface for payout destination storage
type BankDetailRepository interface {
	Upsert(ctx context.Context, detail *models.BankDetail) error
	FindByUserID(ctx context.Context, userID int64) (*models.BankDetail, error)
}

// bankDetailRepository implements BankDetailRepository
type bankDetailRepository struct {
	q db.Queryer
}

// NewBankDetailRepository creates a new BankDetailRepository bound to a
// connection pool or an open transaction.
func NewBankDetailRepository(q db.Queryer) BankDetailRepository {
	return &bankDetailRepository{q: q}
}

// Upsert stores the destination account for a user; the last submitted
// account wins.
func (r *bankDetailRepository) Upsert(ctx context.Context, detail *models.BankDetail) error {
	query := `
		INSERT INTO bank_details
			(user_id, bank_name, bank_code, account_number, account_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET bank_name = EXCLUDED.bank_name,
		    bank_code = EXCLUDED.bank_code,
		    account_number = EXCLUDED.account_number,
		    account_name = EXCLUDED.account_name,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		detail.UserID,
		detail.BankName,
		detail.BankCode,
		detail.AccountNumber,
		detail.AccountName,
	).Scan(&detail.ID, &detail.CreatedAt, &detail.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert bank detail: %w", err)
	}

	return nil
}

// FindByUserID retrieves the saved destination account for a user.
func (r *bankDetailRepository) FindByUserID(ctx context.Context, userID int64) (*models.BankDetail, error) {
	query := `
		SELECT id, user_id, bank_name, bank_code, account_number, account_name,
		       created_at, updated_at
		FROM bank_details
		WHERE user_id = $1
	`

	var detail models.BankDetail
	err := r.q.QueryRowContext(ctx, query, userID).Scan(
		&detail.ID,
		&detail.UserID,
		&detail.BankName,
		&detail.BankCode,
		&detail.AccountNumber,
		&detail.AccountName,
		&detail.CreatedAt,
		&detail.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find bank detail: %w", err)
	}

	return &detail, nil
}

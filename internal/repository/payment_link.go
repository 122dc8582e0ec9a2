package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TheRightGift/coolpayServer/internal/db"
	"github.com/TheRightGift/coolpayServer/internal/models"
)

// PaymentLinkRepository defines the interface for payment link data access
type PaymentLinkRepository interface {
	Create(ctx context.Context, link *models.PaymentLink) error
	FindByToken(ctx context.Context, token string) (*models.PaymentLink, error)
	FindByTokenForUpdate(ctx context.Context, token string) (*models.PaymentLink, error)
	LatestActiveOpenLink(ctx context.Context, walletID, userID int64) (*models.PaymentLink, error)
	RevokeActiveOpenLinks(ctx context.Context, walletID, userID int64) error
}

// paymentLinkRepository implements PaymentLinkRepository
type paymentLinkRepository struct {
	q db.Queryer
}

// NewPaymentLinkRepository creates a new PaymentLinkRepository bound to a
// connection pool or an open transaction.
func NewPaymentLinkRepository(q db.Queryer) PaymentLinkRepository {
	return &paymentLinkRepository{q: q}
}

const paymentLinkColumns = `id, token, wallet_id, user_id, amount, memo,
	       expires_at, status, created_at, updated_at`

// Create inserts a new payment link and populates its id and timestamps.
func (r *paymentLinkRepository) Create(ctx context.Context, link *models.PaymentLink) error {
	query := `
		INSERT INTO payment_links
			(token, wallet_id, user_id, amount, memo, expires_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		link.Token,
		link.WalletID,
		link.UserID,
		link.Amount,
		link.Memo,
		link.ExpiresAt,
		link.Status,
	).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create payment link: %w", err)
	}

	return nil
}

// FindByToken retrieves a link by token without locking it.
func (r *paymentLinkRepository) FindByToken(ctx context.Context, token string) (*models.PaymentLink, error) {
	query := `SELECT ` + paymentLinkColumns + ` FROM payment_links WHERE token = $1`
	return r.scanLink(r.q.QueryRowContext(ctx, query, token))
}

// FindByTokenForUpdate retrieves a link by token under an exclusive row
// lock. The link row is the first lock taken by the transfer path; wallets
// follow.
func (r *paymentLinkRepository) FindByTokenForUpdate(ctx context.Context, token string) (*models.PaymentLink, error) {
	query := `SELECT ` + paymentLinkColumns + ` FROM payment_links WHERE token = $1 FOR UPDATE`
	return r.scanLink(r.q.QueryRowContext(ctx, query, token))
}

// LatestActiveOpenLink returns the newest active open-amount (tipping) link
// for a wallet, or ErrNotFound.
func (r *paymentLinkRepository) LatestActiveOpenLink(ctx context.Context, walletID, userID int64) (*models.PaymentLink, error) {
	query := `
		SELECT ` + paymentLinkColumns + `
		FROM payment_links
		WHERE wallet_id = $1 AND user_id = $2 AND status = 'active' AND amount IS NULL
		ORDER BY id DESC
		LIMIT 1
	`
	return r.scanLink(r.q.QueryRowContext(ctx, query, walletID, userID))
}

// RevokeActiveOpenLinks revokes every active open-amount link for a wallet.
// Called before minting a replacement tipping link.
func (r *paymentLinkRepository) RevokeActiveOpenLinks(ctx context.Context, walletID, userID int64) error {
	query := `
		UPDATE payment_links
		SET status = 'revoked', updated_at = NOW()
		WHERE wallet_id = $1 AND user_id = $2 AND status = 'active' AND amount IS NULL
	`

	if _, err := r.q.ExecContext(ctx, query, walletID, userID); err != nil {
		return fmt.Errorf("failed to revoke payment links: %w", err)
	}
	return nil
}

func (r *paymentLinkRepository) scanLink(row *sql.Row) (*models.PaymentLink, error) {
	var link models.PaymentLink
	err := row.Scan(
		&link.ID,
		&link.Token,
		&link.WalletID,
		&link.UserID,
		&link.Amount,
		&link.Memo,
		&link.ExpiresAt,
		&link.Status,
		&link.CreatedAt,
		&link.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment link: %w", err)
	}

	return &link, nil
}

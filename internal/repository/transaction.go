package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/TheRightGift/coolpayServer/internal/db"
	"github.com/TheRightGift/coolpayServer/internal/models"
	"github.com/lib/pq"
)

// IdempotencyQuery scopes an idempotency lookup to one logical operation:
// the initiating actor (nil for public checkout), the operation kind, and
// the reference prefix of the originating endpoint.
type IdempotencyQuery struct {
	InitiatorUserID *int64
	Key             string
	RefPrefix       string
	Type            models.TransactionType
}

// TransactionRepository defines the interface for ledger entry data access
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	FindByID(ctx context.Context, id int64) (*models.Transaction, error)
	FindByReferenceForUpdate(ctx context.Context, reference string) (*models.Transaction, error)
	FindByExternalRefForUpdate(ctx context.Context, externalRef string) (*models.Transaction, error)
	FindByIdempotencyKey(ctx context.Context, q IdempotencyQuery) (*models.Transaction, error)
	ListPendingByPrefix(ctx context.Context, typ models.TransactionType, prefixes []string, limit int) ([]*models.Transaction, error)
	Update(ctx context.Context, txn *models.Transaction) error
	SetExternalRef(ctx context.Context, id int64, externalRef string) error
	ListByWallet(ctx context.Context, walletID int64, limit int) ([]*models.Transaction, error)
	SoftDelete(ctx context.Context, id int64) error
}

// transactionRepository implements TransactionRepository
type transactionRepository struct {
	q db.Queryer
}

// NewTransactionRepository creates a new TransactionRepository bound to a
// connection pool or an open transaction.
func NewTransactionRepository(q db.Queryer) TransactionRepository {
	return &transactionRepository{q: q}
}

const transactionColumns = `id, reference, external_ref, dr_wallet_id, cr_wallet_id,
	       amount, type, status, initiator_user_id, description, meta,
	       expires_at, created_at, updated_at, deleted_at`

// Create inserts a new ledger entry and populates its id and timestamps.
func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions
			(reference, external_ref, dr_wallet_id, cr_wallet_id, amount,
			 type, status, initiator_user_id, description, meta, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	meta, err := marshalMeta(txn.Meta)
	if err != nil {
		return err
	}

	err = r.q.QueryRowContext(ctx, query,
		txn.Reference,
		txn.ExternalRef,
		txn.DrWalletID,
		txn.CrWalletID,
		txn.Amount,
		txn.Type,
		txn.Status,
		txn.InitiatorUserID,
		txn.Description,
		meta,
		txn.ExpiresAt,
	).Scan(&txn.ID, &txn.CreatedAt, &txn.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if pqErr.Constraint == "idx_transactions_idempotency_key" {
			return models.ErrDuplicateIdempotencyKey
		}
		return models.ErrDuplicateReference
	}
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// FindByID retrieves a ledger entry by internal id.
func (r *transactionRepository) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND deleted_at IS NULL
	`
	return r.scanTransaction(r.q.QueryRowContext(ctx, query, id))
}

// FindByReferenceForUpdate retrieves a ledger entry by its caller-visible
// reference under an exclusive row lock. Must be called inside a
// transaction; this lock totally orders settlement signals for one entry.
func (r *transactionRepository) FindByReferenceForUpdate(ctx context.Context, reference string) (*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reference = $1 AND deleted_at IS NULL
		FOR UPDATE
	`
	return r.scanTransaction(r.q.QueryRowContext(ctx, query, reference))
}

// FindByExternalRefForUpdate retrieves a ledger entry by the identifier the
// gateway assigned to it, under an exclusive row lock. Transfer signals may
// arrive carrying only the transfer code.
func (r *transactionRepository) FindByExternalRefForUpdate(ctx context.Context, externalRef string) (*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE external_ref = $1 AND deleted_at IS NULL
		FOR UPDATE
	`
	return r.scanTransaction(r.q.QueryRowContext(ctx, query, externalRef))
}

// FindByIdempotencyKey resolves the ledger entry previously produced for a
// caller-supplied idempotency key, if any.
func (r *transactionRepository) FindByIdempotencyKey(ctx context.Context, q IdempotencyQuery) (*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE type = $1
		  AND reference LIKE $2
		  AND meta ->> 'idempotency_key' = $3
		  AND ($4::bigint IS NULL OR initiator_user_id = $4)
		  AND deleted_at IS NULL
		ORDER BY id
		LIMIT 1
	`
	return r.scanTransaction(r.q.QueryRowContext(ctx, query,
		q.Type, q.RefPrefix+"%", q.Key, q.InitiatorUserID))
}

// ListPendingByPrefix lists long-pending entries of one kind whose
// reference carries one of the given prefixes, oldest first, bounded by
// limit. Used by the reconciliation sweeper. Rows are not locked here;
// the settlement transition re-reads each under FOR UPDATE.
func (r *transactionRepository) ListPendingByPrefix(ctx context.Context, typ models.TransactionType, prefixes []string, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status = 'pending'
		  AND type = $1
		  AND reference LIKE ANY ($2)
		  AND deleted_at IS NULL
		ORDER BY id
		LIMIT $3
	`

	patterns := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		patterns = append(patterns, p+"%")
	}

	rows, err := r.q.QueryContext(ctx, query, typ, pq.Array(patterns), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}
	defer rows.Close()

	return r.collectTransactions(rows)
}

// Update persists the mutable settlement fields of an entry: status,
// external_ref and metadata.
func (r *transactionRepository) Update(ctx context.Context, txn *models.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $2,
		    external_ref = $3,
		    meta = $4,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	meta, err := marshalMeta(txn.Meta)
	if err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, query, txn.ID, txn.Status, txn.ExternalRef, meta)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
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

// SetExternalRef stores the gateway-assigned identifier for an entry.
func (r *transactionRepository) SetExternalRef(ctx context.Context, id int64, externalRef string) error {
	query := `
		UPDATE transactions
		SET external_ref = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.q.ExecContext(ctx, query, id, externalRef)
	if err != nil {
		return fmt.Errorf("failed to set external ref: %w", err)
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

// ListByWallet returns the entries where the wallet is either side, newest
// first.
func (r *transactionRepository) ListByWallet(ctx context.Context, walletID int64, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (cr_wallet_id = $1 OR dr_wallet_id = $1)
		  AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.QueryContext(ctx, query, walletID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	defer rows.Close()

	return r.collectTransactions(rows)
}

// SoftDelete marks an entry deleted for audit purposes; rows are never
// removed physically.
func (r *transactionRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE transactions
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete transaction: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *transactionRepository) scanTransaction(row rowScanner) (*models.Transaction, error) {
	var txn models.Transaction
	var meta []byte

	err := row.Scan(
		&txn.ID,
		&txn.Reference,
		&txn.ExternalRef,
		&txn.DrWalletID,
		&txn.CrWalletID,
		&txn.Amount,
		&txn.Type,
		&txn.Status,
		&txn.InitiatorUserID,
		&txn.Description,
		&meta,
		&txn.ExpiresAt,
		&txn.CreatedAt,
		&txn.UpdatedAt,
		&txn.DeletedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &txn.Meta); err != nil {
			return nil, fmt.Errorf("failed to decode transaction meta: %w", err)
		}
	}

	return &txn, nil
}

func (r *transactionRepository) collectTransactions(rows *sql.Rows) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	for rows.Next() {
		txn, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}

func marshalMeta(meta map[string]any) ([]byte, error) {
	if meta == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction meta: %w", err)
	}
	return data, nil
}

package repository

import (
	"context"
	"testing"

	"github.com/TheRightGift/coolpayServer/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_CreateAndFind(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	userID, walletID := seedUserWithWallet(t, database, "Ada Obi", "ada@example.test")

	repo := NewTransactionRepository(database)
	ctx := context.Background()

	txn := &models.Transaction{
		Reference:       "DEP-20250101-000000-AAAAAA",
		CrWalletID:      &walletID,
		Amount:          decimal.RequireFromString("1500"),
		Type:            models.TransactionTypePayment,
		Status:          models.TransactionStatusPending,
		InitiatorUserID: &userID,
		Description:     "Wallet deposit",
		Meta: map[string]any{
			models.MetaIdempotencyKey: "dep-key-1",
			models.MetaDirection:      "deposit_funding",
		},
	}
	require.NoError(t, repo.Create(ctx, txn))
	require.NotZero(t, txn.ID)

	t.Run("duplicate reference rejected", func(t *testing.T) {
		dup := &models.Transaction{
			Reference:  txn.Reference,
			CrWalletID: &walletID,
			Amount:     decimal.RequireFromString("10"),
			Type:       models.TransactionTypePayment,
			Status:     models.TransactionStatusPending,
		}
		assert.ErrorIs(t, repo.Create(ctx, dup), models.ErrDuplicateReference)
	})

	t.Run("meta round trip", func(t *testing.T) {
		found, err := repo.FindByID(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, "dep-key-1", found.Meta[models.MetaIdempotencyKey])
		assert.Equal(t, "deposit_funding", found.Meta[models.MetaDirection])
		assert.True(t, found.Amount.Equal(decimal.RequireFromString("1500")))
	})

	t.Run("idempotency lookup scoped to initiator and prefix", func(t *testing.T) {
		found, err := repo.FindByIdempotencyKey(ctx, IdempotencyQuery{
			InitiatorUserID: &userID,
			Type:            models.TransactionTypePayment,
			RefPrefix:       models.RefPrefixDeposit,
			Key:             "dep-key-1",
		})
		require.NoError(t, err)
		assert.Equal(t, txn.ID, found.ID)

		otherUser := userID + 1
		_, err = repo.FindByIdempotencyKey(ctx, IdempotencyQuery{
			InitiatorUserID: &otherUser,
			Type:            models.TransactionTypePayment,
			RefPrefix:       models.RefPrefixDeposit,
			Key:             "dep-key-1",
		})
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, err = repo.FindByIdempotencyKey(ctx, IdempotencyQuery{
			InitiatorUserID: &userID,
			Type:            models.TransactionTypePayment,
			RefPrefix:       models.RefPrefixWithdrawal,
			Key:             "dep-key-1",
		})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("duplicate idempotency key rejected", func(t *testing.T) {
		dup := &models.Transaction{
			Reference:       "DEP-20250101-000000-FFFFFF",
			CrWalletID:      &walletID,
			Amount:          decimal.RequireFromString("1500"),
			Type:            models.TransactionTypePayment,
			Status:          models.TransactionStatusPending,
			InitiatorUserID: &userID,
			Meta:            map[string]any{models.MetaIdempotencyKey: "dep-key-1"},
		}
		assert.ErrorIs(t, repo.Create(ctx, dup), models.ErrDuplicateIdempotencyKey)

		// Same key under a different prefix is a different operation.
		other := &models.Transaction{
			Reference:       "PAY-20250101-000000-GGGGGG",
			CrWalletID:      &walletID,
			Amount:          decimal.RequireFromString("1500"),
			Type:            models.TransactionTypePayment,
			Status:          models.TransactionStatusPending,
			InitiatorUserID: &userID,
			Meta:            map[string]any{models.MetaIdempotencyKey: "dep-key-1"},
		}
		assert.NoError(t, repo.Create(ctx, other))
	})

	t.Run("soft deleted entry disappears from lookups", func(t *testing.T) {
		hidden := &models.Transaction{
			Reference:  "DEP-20250101-000000-EEEEEE",
			CrWalletID: &walletID,
			Amount:     decimal.RequireFromString("25"),
			Type:       models.TransactionTypePayment,
			Status:     models.TransactionStatusFailed,
		}
		require.NoError(t, repo.Create(ctx, hidden))
		require.NoError(t, repo.SoftDelete(ctx, hidden.ID))

		_, err := repo.FindByID(ctx, hidden.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.ErrorIs(t, repo.SoftDelete(ctx, hidden.ID), models.ErrNotFound)
	})

	t.Run("external ref set and looked up", func(t *testing.T) {
		require.NoError(t, repo.SetExternalRef(ctx, txn.ID, "4099260516"))

		found, err := repo.FindByExternalRefForUpdate(ctx, "4099260516")
		require.NoError(t, err)
		assert.Equal(t, txn.ID, found.ID)
	})
}

func TestTransactionRepository_ListPendingByPrefix(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	_, walletID := seedUserWithWallet(t, database, "Ada Obi", "ada@example.test")

	repo := NewTransactionRepository(database)
	ctx := context.Background()

	seed := func(reference string, typ models.TransactionType, status models.TransactionStatus) {
		t.Helper()
		txn := &models.Transaction{
			Reference: reference,
			Amount:    decimal.RequireFromString("100"),
			Type:      typ,
			Status:    status,
		}
		if typ == models.TransactionTypePayout {
			txn.DrWalletID = &walletID
		} else {
			txn.CrWalletID = &walletID
		}
		require.NoError(t, repo.Create(ctx, txn))
	}

	seed("DEP-20250101-000000-AAAAAA", models.TransactionTypePayment, models.TransactionStatusPending)
	seed("WEB-20250101-000000-BBBBBB", models.TransactionTypePayment, models.TransactionStatusPending)
	seed("DEP-20250101-000000-CCCCCC", models.TransactionTypePayment, models.TransactionStatusSuccess)
	seed("WD-20250101-000000-DDDDDD", models.TransactionTypePayout, models.TransactionStatusPending)

	pending, err := repo.ListPendingByPrefix(ctx, models.TransactionTypePayment,
		[]string{models.RefPrefixDeposit, models.RefPrefixCheckout}, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, txn := range pending {
		assert.Equal(t, models.TransactionStatusPending, txn.Status)
		assert.Equal(t, models.TransactionTypePayment, txn.Type)
	}

	payouts, err := repo.ListPendingByPrefix(ctx, models.TransactionTypePayout,
		[]string{models.RefPrefixWithdrawal}, 10)
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, "WD-20250101-000000-DDDDDD", payouts[0].Reference)
}

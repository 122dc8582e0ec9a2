package service

import (
	"context"
	"errors"
	"testing"

	"github.com/TheRightGift/coolpayServer/internal/config"
	"github.com/TheRightGift/coolpayServer/internal/models"
	"github.com/TheRightGift/coolpayServer/internal/repository"
	"github.com/TheRightGift/coolpayServer/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func withdrawalConfig() config.WithdrawalConfig {
	return config.WithdrawalConfig{
		Fee:       decimal.RequireFromString("300"),
		MinAmount: decimal.RequireFromString("1000"),
	}
}

func validWithdrawal(amount string) WithdrawalRequest {
	return WithdrawalRequest{
		Amount:        decimal.RequireFromString(amount),
		BankCode:      "058",
		BankName:      "GTBank",
		AccountNumber: "0123456789",
		AccountName:   "Ada Obi",
	}
}

func TestWithdrawalService_Validate(t *testing.T) {
	service := NewWithdrawalService(nil, nil, withdrawalConfig(), testLogger())

	t.Run("below minimum", func(t *testing.T) {
		req := validWithdrawal("999")
		err := service.validate(req)

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeValidation, svcErr.Code)
		}
	})

	t.Run("bad account number", func(t *testing.T) {
		req := validWithdrawal("2000")
		req.AccountNumber = "12345"
		assert.Error(t, service.validate(req))
	})

	t.Run("missing bank code", func(t *testing.T) {
		req := validWithdrawal("2000")
		req.BankCode = ""
		assert.Error(t, service.validate(req))
	})

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, service.validate(validWithdrawal("1000")))
	})
}

func TestWithdrawalService_PerformHold(t *testing.T) {
	t.Run("debits amount plus fee and records pending entry", func(t *testing.T) {
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		mockBankRepo := mocks.NewMockBankDetailRepository(t)
		service := NewWithdrawalService(nil, nil, withdrawalConfig(), testLogger())
		ctx := context.Background()

		wallet := &models.Wallet{ID: 1, UserID: 10, Balance: decimal.RequireFromString("5000")}

		mockTxRepo.On("FindByIdempotencyKey", ctx, mock.AnythingOfType("repository.IdempotencyQuery")).
			Return(nil, models.ErrNotFound)
		mockWalletRepo.On("FindByUserIDForUpdate", ctx, int64(10)).Return(wallet, nil)
		mockBankRepo.On("Upsert", ctx, mock.AnythingOfType("*models.BankDetail")).Return(nil)
		mockWalletRepo.On("AdjustBalance", ctx, int64(1), decimal.RequireFromString("-2300")).Return(nil)
		mockTxRepo.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)

		result, txn, err := service.performHold(ctx, mockWalletRepo, mockTxRepo, mockBankRepo,
			10, validWithdrawal("2000"), "wd-key-1")

		assert.NoError(t, err)
		assert.Equal(t, models.TransactionStatusPending, result.Status)
		assert.True(t, result.Amount.Equal(decimal.RequireFromString("2000")))
		assert.True(t, result.Fee.Equal(decimal.RequireFromString("300")))
		assert.True(t, result.Total.Equal(decimal.RequireFromString("2300")))
		assert.Equal(t, models.TransactionTypePayout, txn.Type)
		assert.Regexp(t, `^WD-`, txn.Reference)

		mockWalletRepo.AssertExpectations(t)
		mockTxRepo.AssertExpectations(t)
		mockBankRepo.AssertExpectations(t)
	})

	t.Run("insufficient balance names fee-inclusive total", func(t *testing.T) {
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		mockBankRepo := mocks.NewMockBankDetailRepository(t)
		service := NewWithdrawalService(nil, nil, withdrawalConfig(), testLogger())
		ctx := context.Background()

		wallet := &models.Wallet{ID: 1, UserID: 10, Balance: decimal.RequireFromString("2000")}
		mockWalletRepo.On("FindByUserIDForUpdate", ctx, int64(10)).Return(wallet, nil)

		result, _, err := service.performHold(ctx, mockWalletRepo, mockTxRepo, mockBankRepo,
			10, validWithdrawal("2000"), "")

		assert.Nil(t, result)
		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeInsufficientFunds, svcErr.Code)
			assert.Contains(t, svcErr.Message, "2300")
			assert.Contains(t, svcErr.Message, "300")
		}
		mockWalletRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("idempotent replay returns existing entry without new hold", func(t *testing.T) {
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		mockBankRepo := mocks.NewMockBankDetailRepository(t)
		service := NewWithdrawalService(nil, nil, withdrawalConfig(), testLogger())
		ctx := context.Background()

		userID := int64(10)
		existing := &models.Transaction{
			ID:        31,
			Reference: "WD-20250101-000000-CCCCCC",
			Type:      models.TransactionTypePayout,
			Status:    models.TransactionStatusPending,
			Amount:    decimal.RequireFromString("2000"),
			Meta:      map[string]any{models.MetaFee: "300"},
		}

		mockTxRepo.On("FindByIdempotencyKey", ctx, repository.IdempotencyQuery{
			InitiatorUserID: &userID,
			Type:            models.TransactionTypePayout,
			RefPrefix:       models.RefPrefixWithdrawal,
			Key:             "wd-key-1",
		}).Return(existing, nil)

		result, _, err := service.performHold(ctx, mockWalletRepo, mockTxRepo, mockBankRepo,
			userID, validWithdrawal("2000"), "wd-key-1")

		assert.NoError(t, err)
		assert.True(t, result.Replayed)
		assert.Equal(t, existing.Reference, result.Reference)
		assert.True(t, result.Total.Equal(decimal.RequireFromString("2300")))

		mockWalletRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
		mockTxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("replay keeps the fee recorded on the entry", func(t *testing.T) {
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		mockBankRepo := mocks.NewMockBankDetailRepository(t)
		cfg := withdrawalConfig()
		cfg.Fee = decimal.RequireFromString("500") // raised since the original call
		service := NewWithdrawalService(nil, nil, cfg, testLogger())
		ctx := context.Background()

		userID := int64(10)
		existing := &models.Transaction{
			ID:        31,
			Reference: "WD-20250101-000000-CCCCCC",
			Type:      models.TransactionTypePayout,
			Status:    models.TransactionStatusPending,
			Amount:    decimal.RequireFromString("2000"),
			Meta:      map[string]any{models.MetaFee: "300"},
		}

		mockTxRepo.On("FindByIdempotencyKey", ctx, repository.IdempotencyQuery{
			InitiatorUserID: &userID,
			Type:            models.TransactionTypePayout,
			RefPrefix:       models.RefPrefixWithdrawal,
			Key:             "wd-key-1",
		}).Return(existing, nil)

		result, _, err := service.performHold(ctx, mockWalletRepo, mockTxRepo, mockBankRepo,
			userID, validWithdrawal("2000"), "wd-key-1")

		assert.NoError(t, err)
		assert.True(t, result.Replayed)
		assert.True(t, result.Fee.Equal(decimal.RequireFromString("300")))
		assert.True(t, result.Total.Equal(decimal.RequireFromString("2300")))
	})
}

func TestWithdrawalService_PerformRelease(t *testing.T) {
	t.Run("refunds hold and marks entry failed", func(t *testing.T) {
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		service := NewWithdrawalService(nil, nil, withdrawalConfig(), testLogger())
		ctx := context.Background()

		walletID := int64(1)
		txn := &models.Transaction{
			ID:         31,
			Reference:  "WD-20250101-000000-CCCCCC",
			DrWalletID: &walletID,
			Type:       models.TransactionTypePayout,
			Status:     models.TransactionStatusPending,
			Amount:     decimal.RequireFromString("2000"),
		}

		mockTxRepo.On("FindByReferenceForUpdate", ctx, txn.Reference).Return(txn, nil)
		mockWalletRepo.On("FindByIDForUpdate", ctx, walletID).
			Return(&models.Wallet{ID: walletID, Balance: decimal.RequireFromString("2700")}, nil)
		mockWalletRepo.On("AdjustBalance", ctx, walletID, decimal.RequireFromString("2300")).Return(nil)
		mockTxRepo.On("Update", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)

		err := service.performRelease(ctx, mockWalletRepo, mockTxRepo, txn,
			decimal.RequireFromString("2300"), errors.New("transfer rejected"))

		assert.NoError(t, err)
		assert.Equal(t, models.TransactionStatusFailed, txn.Status)
		assert.Equal(t, "transfer rejected", txn.Meta[models.MetaFailureReason])
	})

	t.Run("skips refund when entry already terminal", func(t *testing.T) {
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		service := NewWithdrawalService(nil, nil, withdrawalConfig(), testLogger())
		ctx := context.Background()

		walletID := int64(1)
		txn := &models.Transaction{
			ID:         31,
			Reference:  "WD-20250101-000000-CCCCCC",
			DrWalletID: &walletID,
			Type:       models.TransactionTypePayout,
			Status:     models.TransactionStatusPending,
			Amount:     decimal.RequireFromString("2000"),
		}
		settled := *txn
		settled.Status = models.TransactionStatusSuccess

		mockTxRepo.On("FindByReferenceForUpdate", ctx, txn.Reference).Return(&settled, nil)

		err := service.performRelease(ctx, mockWalletRepo, mockTxRepo, txn,
			decimal.RequireFromString("2300"), errors.New("late failure"))

		assert.NoError(t, err)
		mockWalletRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	})
}

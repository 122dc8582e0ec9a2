package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/TheRightGift/coolpayServer/internal/models"
	"github.com/TheRightGift/coolpayServer/internal/repository"
	"github.com/TheRightGift/coolpayServer/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPaymentService_PerformExecute(t *testing.T) {
	t.Run("successful transfer conserves funds", func(t *testing.T) {
		mockLinkRepo := mocks.NewMockPaymentLinkRepository(t)
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		mockUserRepo := mocks.NewMockUserRepository(t)
		service := NewPaymentService(nil, testLogger())
		ctx := context.Background()

		link := &models.PaymentLink{
			ID:       7,
			WalletID: 2,
			UserID:   20,
			Token:    "tok",
			Status:   models.PaymentLinkStatusActive,
		}
		sender := &models.Wallet{ID: 1, UserID: 10, Balance: decimal.RequireFromString("5000")}
		receiver := &models.Wallet{ID: 2, UserID: 20, Balance: decimal.Zero}

		mockLinkRepo.On("FindByTokenForUpdate", ctx, "tok").Return(link, nil)
		mockTxRepo.On("FindByIdempotencyKey", ctx, mock.AnythingOfType("repository.IdempotencyQuery")).
			Return(nil, models.ErrNotFound)
		mockWalletRepo.On("FindByUserIDForUpdate", ctx, int64(10)).Return(sender, nil)
		mockTxRepo.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)
		mockWalletRepo.On("AdjustBalance", ctx, int64(1), decimal.RequireFromString("-1200")).Return(nil)
		mockWalletRepo.On("FindByIDForUpdate", ctx, int64(2)).Return(receiver, nil)
		mockWalletRepo.On("AdjustBalance", ctx, int64(2), decimal.RequireFromString("1200")).Return(nil)
		mockUserRepo.On("FindByID", ctx, int64(20)).Return(&models.User{ID: 20, Name: "Ada"}, nil)

		result, err := service.performExecute(ctx, mockLinkRepo, mockWalletRepo, mockTxRepo, mockUserRepo,
			10, "tok", decPtr("1200"), "key-1")

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, models.TransactionStatusSuccess, result.Status)
		assert.True(t, result.Amount.Equal(decimal.RequireFromString("1200")))
		assert.True(t, result.SenderBalance.Equal(decimal.RequireFromString("3800")))
		assert.True(t, result.ReceiverBalance.Equal(decimal.RequireFromString("1200")))
		assert.Equal(t, "Ada", result.Receiver.Name)
		assert.False(t, result.Replayed)

		mockLinkRepo.AssertExpectations(t)
		mockWalletRepo.AssertExpectations(t)
		mockTxRepo.AssertExpectations(t)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("link amount overrides requested amount", func(t *testing.T) {
		mockLinkRepo := mocks.NewMockPaymentLinkRepository(t)
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		mockUserRepo := mocks.NewMockUserRepository(t)
		service := NewPaymentService(nil, testLogger())
		ctx := context.Background()

		link := &models.PaymentLink{
			ID:       7,
			WalletID: 2,
			UserID:   20,
			Token:    "tok",
			Status:   models.PaymentLinkStatusActive,
			Amount:   decPtr("500"),
		}
		sender := &models.Wallet{ID: 1, UserID: 10, Balance: decimal.RequireFromString("5000")}
		receiver := &models.Wallet{ID: 2, UserID: 20, Balance: decimal.Zero}

		mockLinkRepo.On("FindByTokenForUpdate", ctx, "tok").Return(link, nil)
		mockWalletRepo.On("FindByUserIDForUpdate", ctx, int64(10)).Return(sender, nil)
		mockTxRepo.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)
		mockWalletRepo.On("AdjustBalance", ctx, int64(1), decimal.RequireFromString("-500")).Return(nil)
		mockWalletRepo.On("FindByIDForUpdate", ctx, int64(2)).Return(receiver, nil)
		mockWalletRepo.On("AdjustBalance", ctx, int64(2), decimal.RequireFromString("500")).Return(nil)
		mockUserRepo.On("FindByID", ctx, int64(20)).Return(&models.User{ID: 20, Name: "Ada"}, nil)

		result, err := service.performExecute(ctx, mockLinkRepo, mockWalletRepo, mockTxRepo, mockUserRepo,
			10, "tok", decPtr("9999"), "")

		assert.NoError(t, err)
		assert.True(t, result.Amount.Equal(decimal.RequireFromString("500")))
	})

	t.Run("insufficient funds", func(t *testing.T) {
		mockLinkRepo := mocks.NewMockPaymentLinkRepository(t)
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		mockUserRepo := mocks.NewMockUserRepository(t)
		service := NewPaymentService(nil, testLogger())
		ctx := context.Background()

		link := &models.PaymentLink{ID: 7, WalletID: 2, UserID: 20, Token: "tok", Status: models.PaymentLinkStatusActive}
		sender := &models.Wallet{ID: 1, UserID: 10, Balance: decimal.RequireFromString("100")}

		mockLinkRepo.On("FindByTokenForUpdate", ctx, "tok").Return(link, nil)
		mockWalletRepo.On("FindByUserIDForUpdate", ctx, int64(10)).Return(sender, nil)

		result, err := service.performExecute(ctx, mockLinkRepo, mockWalletRepo, mockTxRepo, mockUserRepo,
			10, "tok", decPtr("1200"), "")

		assert.Nil(t, result)
		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeInsufficientFunds, svcErr.Code)
		}
	})

	t.Run("self payment rejected", func(t *testing.T) {
		mockLinkRepo := mocks.NewMockPaymentLinkRepository(t)
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		mockUserRepo := mocks.NewMockUserRepository(t)
		service := NewPaymentService(nil, testLogger())
		ctx := context.Background()

		link := &models.PaymentLink{ID: 7, WalletID: 1, UserID: 10, Token: "tok", Status: models.PaymentLinkStatusActive}
		sender := &models.Wallet{ID: 1, UserID: 10, Balance: decimal.RequireFromString("5000")}

		mockLinkRepo.On("FindByTokenForUpdate", ctx, "tok").Return(link, nil)
		mockWalletRepo.On("FindByUserIDForUpdate", ctx, int64(10)).Return(sender, nil)

		result, err := service.performExecute(ctx, mockLinkRepo, mockWalletRepo, mockTxRepo, mockUserRepo,
			10, "tok", decPtr("1200"), "")

		assert.Nil(t, result)
		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeSelfPayment, svcErr.Code)
		}
	})

	t.Run("revoked link rejected", func(t *testing.T) {
		mockLinkRepo := mocks.NewMockPaymentLinkRepository(t)
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		mockUserRepo := mocks.NewMockUserRepository(t)
		service := NewPaymentService(nil, testLogger())
		ctx := context.Background()

		link := &models.PaymentLink{ID: 7, WalletID: 2, UserID: 20, Token: "tok", Status: models.PaymentLinkStatusRevoked}
		mockLinkRepo.On("FindByTokenForUpdate", ctx, "tok").Return(link, nil)

		result, err := service.performExecute(ctx, mockLinkRepo, mockWalletRepo, mockTxRepo, mockUserRepo,
			10, "tok", decPtr("1200"), "")

		assert.Nil(t, result)
		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeLinkInvalid, svcErr.Code)
		}
	})

	t.Run("open link without amount rejected", func(t *testing.T) {
		mockLinkRepo := mocks.NewMockPaymentLinkRepository(t)
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		mockUserRepo := mocks.NewMockUserRepository(t)
		service := NewPaymentService(nil, testLogger())
		ctx := context.Background()

		link := &models.PaymentLink{ID: 7, WalletID: 2, UserID: 20, Token: "tok", Status: models.PaymentLinkStatusActive}
		mockLinkRepo.On("FindByTokenForUpdate", ctx, "tok").Return(link, nil)

		result, err := service.performExecute(ctx, mockLinkRepo, mockWalletRepo, mockTxRepo, mockUserRepo,
			10, "tok", nil, "")

		assert.Nil(t, result)
		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeAmountRequired, svcErr.Code)
		}
	})

	t.Run("idempotent replay returns original entry", func(t *testing.T) {
		mockLinkRepo := mocks.NewMockPaymentLinkRepository(t)
		mockWalletRepo := mocks.NewMockWalletRepository(t)
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		mockUserRepo := mocks.NewMockUserRepository(t)
		service := NewPaymentService(nil, testLogger())
		ctx := context.Background()

		userID := int64(10)
		link := &models.PaymentLink{ID: 7, WalletID: 2, UserID: 20, Token: "tok", Status: models.PaymentLinkStatusActive}
		existing := &models.Transaction{
			ID:        42,
			Reference: "PAY-20250101-000000-ABCDEF",
			Type:      models.TransactionTypePayment,
			Status:    models.TransactionStatusSuccess,
			Amount:    decimal.RequireFromString("1200"),
		}

		mockLinkRepo.On("FindByTokenForUpdate", ctx, "tok").Return(link, nil)
		mockTxRepo.On("FindByIdempotencyKey", ctx, repository.IdempotencyQuery{
			InitiatorUserID: &userID,
			Type:            models.TransactionTypePayment,
			RefPrefix:       models.RefPrefixPayment,
			Key:             "key-1",
		}).Return(existing, nil)

		result, err := service.performExecute(ctx, mockLinkRepo, mockWalletRepo, mockTxRepo, mockUserRepo,
			userID, "tok", decPtr("1200"), "key-1")

		assert.NoError(t, err)
		assert.True(t, result.Replayed)
		assert.Equal(t, existing.Reference, result.Reference)
		assert.Equal(t, int64(42), result.TransactionID)

		// No wallet movement on replay.
		mockWalletRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
		mockTxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

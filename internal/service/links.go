package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/TheRightGift/coolpayServer/internal/db"
	"github.com/TheRightGift/coolpayServer/internal/models"
	"github.com/TheRightGift/coolpayServer/internal/repository"
	"github.com/shopspring/decimal"
)

const linkTokenLength = 32

const linkTokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// LinkInfo is a shareable view of a payment link.
type LinkInfo struct {
	Token  string
	URL    string
	Memo   string
	Status models.PaymentLinkStatus
	Amount *decimal.Decimal
}

// LinkService manages the per-wallet reusable payment link. Each wallet
// keeps at most one active open link (no fixed amount); regenerating
// revokes the previous one so stale tokens stop resolving.
type LinkService struct {
	db      *db.DB
	logger  *slog.Logger
	baseURL string
}

// NewLinkService creates a new LinkService
func NewLinkService(database *db.DB, baseURL string, logger *slog.Logger) *LinkService {
	return &LinkService{db: database, logger: logger, baseURL: baseURL}
}

// Current returns the caller's active open link, creating one on first use.
func (s *LinkService) Current(ctx context.Context, userID int64) (*LinkInfo, error) {
	return s.performCurrent(ctx,
		repository.NewWalletRepository(s.db),
		repository.NewPaymentLinkRepository(s.db),
		userID,
	)
}

func (s *LinkService) performCurrent(
	ctx context.Context,
	walletRepo repository.WalletRepository,
	linkRepo repository.PaymentLinkRepository,
	userID int64,
) (*LinkInfo, error) {
	wallet, err := walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeWalletNotFound, Message: "wallet not found"}
		}
		return nil, internalError("find wallet", err)
	}

	link, err := linkRepo.LatestActiveOpenLink(ctx, wallet.ID, userID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, internalError("find payment link", err)
	}
	if link == nil {
		link, err = s.createLink(ctx, linkRepo, wallet.ID, userID, "")
		if err != nil {
			return nil, err
		}
	}

	return s.linkInfo(link), nil
}

// Regenerate revokes the caller's active open links and issues a fresh one.
func (s *LinkService) Regenerate(ctx context.Context, userID int64, memo string) (*LinkInfo, error) {
	return s.performRegenerate(ctx,
		repository.NewWalletRepository(s.db),
		repository.NewPaymentLinkRepository(s.db),
		userID, memo,
	)
}

func (s *LinkService) performRegenerate(
	ctx context.Context,
	walletRepo repository.WalletRepository,
	linkRepo repository.PaymentLinkRepository,
	userID int64,
	memo string,
) (*LinkInfo, error) {
	wallet, err := walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeWalletNotFound, Message: "wallet not found"}
		}
		return nil, internalError("find wallet", err)
	}

	if err := linkRepo.RevokeActiveOpenLinks(ctx, wallet.ID, userID); err != nil {
		return nil, internalError("revoke payment links", err)
	}

	link, err := s.createLink(ctx, linkRepo, wallet.ID, userID, memo)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment link regenerated", "user_id", userID, "token", link.Token)
	return s.linkInfo(link), nil
}

func (s *LinkService) createLink(
	ctx context.Context,
	linkRepo repository.PaymentLinkRepository,
	walletID, userID int64,
	memo string,
) (*models.PaymentLink, error) {
	token, err := newLinkToken()
	if err != nil {
		return nil, internalError("generate link token", err)
	}
	link := &models.PaymentLink{
		WalletID: walletID,
		UserID:   userID,
		Token:    token,
		Memo:     memo,
		Status:   models.PaymentLinkStatusActive,
	}
	if err := linkRepo.Create(ctx, link); err != nil {
		return nil, internalError("create payment link", err)
	}
	return link, nil
}

func (s *LinkService) linkInfo(link *models.PaymentLink) *LinkInfo {
	return &LinkInfo{
		Token:  link.Token,
		URL:    fmt.Sprintf("%s/pay/%s", s.baseURL, link.Token),
		Memo:   link.Memo,
		Status: link.Status,
		Amount: link.Amount,
	}
}

func newLinkToken() (string, error) {
	token := make([]byte, linkTokenLength)
	max := big.NewInt(int64(len(linkTokenAlphabet)))
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		token[i] = linkTokenAlphabet[n.Int64()]
	}
	return string(token), nil
}

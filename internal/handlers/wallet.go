package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/TheRightGift/coolpayServer/internal/middleware"
	"github.com/TheRightGift/coolpayServer/internal/service"
	"github.com/shopspring/decimal"
)

// WalletHandler serves authenticated wallet operations: withdrawals,
// balance and history reads, the shareable payment link and the bank
// directory.
type WalletHandler struct {
	wallets     *service.WalletService
	withdrawals *service.WithdrawalService
	links       *service.LinkService
	logger      *slog.Logger
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(
	wallets *service.WalletService,
	withdrawals *service.WithdrawalService,
	links *service.LinkService,
	logger *slog.Logger,
) *WalletHandler {
	return &WalletHandler{
		wallets:     wallets,
		withdrawals: withdrawals,
		links:       links,
		logger:      logger,
	}
}

func authedUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]errorBody{
			"error": {Code: "unauthorized", Message: "authentication required"},
		})
	}
	return userID, ok
}

type withdrawRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	BankCode       string          `json:"bank_code"`
	BankName       string          `json:"bank_name"`
	AccountNumber  string          `json:"account_number"`
	AccountName    string          `json:"account_name"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// Withdraw handles POST /api/wallet/withdraw
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req withdrawRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.withdrawals.Withdraw(r.Context(), userID, service.WithdrawalRequest{
		Amount:        req.Amount,
		BankCode:      req.BankCode,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
	}, idempotencyKey(r, req.IdempotencyKey))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"reference":      result.Reference,
		"transaction_id": result.TransactionID,
		"status":         result.Status,
		"amount":         result.Amount,
		"fee":            result.Fee,
		"total":          result.Total,
		"replayed":       result.Replayed,
	})
}

// RefreshBalance handles GET /api/wallet/refresh-balance
func (h *WalletHandler) RefreshBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	snapshot, err := h.wallets.Balance(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"wallet_id": snapshot.WalletID,
		"balance":   snapshot.Balance,
	})
}

// Transactions handles GET /api/transactions
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.wallets.History(r.Context(), userID, limit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	items := make([]map[string]any, 0, len(entries))
	for _, txn := range entries {
		items = append(items, map[string]any{
			"id":          txn.ID,
			"reference":   txn.Reference,
			"type":        txn.Type,
			"status":      txn.Status,
			"amount":      txn.Amount,
			"description": txn.Description,
			"created_at":  txn.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"transactions": items})
}

// PaymentLink handles GET /api/wallet/qr-code
func (h *WalletHandler) PaymentLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	info, err := h.links.Current(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, linkPayload(info))
}

type regenerateLinkRequest struct {
	Memo string `json:"memo"`
}

// RegeneratePaymentLink handles POST /api/wallet/qr-code
func (h *WalletHandler) RegeneratePaymentLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req regenerateLinkRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	info, err := h.links.Regenerate(r.Context(), userID, req.Memo)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, linkPayload(info))
}

func linkPayload(info *service.LinkInfo) map[string]any {
	return map[string]any{
		"token":  info.Token,
		"url":    info.URL,
		"memo":   info.Memo,
		"status": info.Status,
		"amount": info.Amount,
	}
}

// Banks handles GET /api/banks
func (h *WalletHandler) Banks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.wallets.Banks(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"banks": banks})
}

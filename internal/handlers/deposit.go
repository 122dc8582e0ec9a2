package handlers

import (
	"log/slog"
	"net/http"

	"github.com/TheRightGift/coolpayServer/internal/middleware"
	"github.com/TheRightGift/coolpayServer/internal/service"
	"github.com/shopspring/decimal"
)

// DepositHandler serves authenticated wallet top-ups.
type DepositHandler struct {
	deposits *service.DepositService
	logger   *slog.Logger
}

// NewDepositHandler creates a new DepositHandler
func NewDepositHandler(deposits *service.DepositService, logger *slog.Logger) *DepositHandler {
	return &DepositHandler{deposits: deposits, logger: logger}
}

type depositRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Email          string          `json:"email"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// Create handles POST /api/deposits
func (h *DepositHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]errorBody{
			"error": {Code: "unauthorized", Message: "authentication required"},
		})
		return
	}

	var req depositRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.deposits.Init(r.Context(), userID, req.Amount, req.Email, idempotencyKey(r, req.IdempotencyKey))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"reference":         result.Reference,
		"transaction_id":    result.TransactionID,
		"status":            result.Status,
		"authorization_url": result.AuthorizationURL,
		"access_code":       result.AccessCode,
		"replayed":          result.Replayed,
	})
}

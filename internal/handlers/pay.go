package handlers

import (
	"log/slog"
	"net/http"

	"github.com/TheRightGift/coolpayServer/internal/middleware"
	"github.com/TheRightGift/coolpayServer/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// PayHandler serves the payment-link flows: the public link preview, the
// in-app wallet transfer and the hosted-checkout fallback for payers
// without a wallet.
type PayHandler struct {
	payments *service.PaymentService
	deposits *service.DepositService
	logger   *slog.Logger
}

// NewPayHandler creates a new PayHandler
func NewPayHandler(payments *service.PaymentService, deposits *service.DepositService, logger *slog.Logger) *PayHandler {
	return &PayHandler{payments: payments, deposits: deposits, logger: logger}
}

// Prepare handles GET /api/pay/{token}/prepare
func (h *PayHandler) Prepare(w http.ResponseWriter, r *http.Request) {
	details, err := h.payments.Prepare(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token":      details.Token,
		"memo":       details.Memo,
		"amount":     details.Amount,
		"status":     details.Status,
		"expires_at": details.ExpiresAt,
		"receiver": map[string]any{
			"name": details.Receiver.Name,
		},
	})
}

type executeRequest struct {
	Amount         *decimal.Decimal `json:"amount"`
	IdempotencyKey string           `json:"idempotency_key"`
}

// Execute handles POST /api/pay/{token}/execute
func (h *PayHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]errorBody{
			"error": {Code: "unauthorized", Message: "authentication required"},
		})
		return
	}

	var req executeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.payments.Execute(r.Context(), userID, chi.URLParam(r, "token"), req.Amount, idempotencyKey(r, req.IdempotencyKey))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	payload := map[string]any{
		"reference":      result.Reference,
		"transaction_id": result.TransactionID,
		"status":         result.Status,
		"amount":         result.Amount,
		"replayed":       result.Replayed,
	}
	if !result.Replayed {
		payload["sender_balance"] = result.SenderBalance
		payload["receiver"] = map[string]any{"name": result.Receiver.Name}
	}
	respondJSON(w, http.StatusOK, payload)
}

type checkoutRequest struct {
	Amount         *decimal.Decimal `json:"amount"`
	Email          string           `json:"email"`
	Name           string           `json:"name"`
	Phone          string           `json:"phone"`
	IdempotencyKey string           `json:"idempotency_key"`
}

// Checkout handles POST /api/pay/{token}/checkout
func (h *PayHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.deposits.Checkout(r.Context(), chi.URLParam(r, "token"), req.Amount, service.CheckoutPayer{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
	}, idempotencyKey(r, req.IdempotencyKey))
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

package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/TheRightGift/coolpayServer/internal/service"
)

const signatureHeader = "X-Paystack-Signature"

// SettlementResolver applies one settlement signal to the ledger.
type SettlementResolver interface {
	Resolve(ctx context.Context, sig service.Signal) error
}

// WebhookHandler receives gateway event notifications. The signature is
// verified against the raw body before any parsing; unknown events are
// acknowledged so the gateway stops retrying them.
type WebhookHandler struct {
	settlements SettlementResolver
	logger      *slog.Logger
	secretKey   string
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(settlements SettlementResolver, secretKey string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{settlements: settlements, logger: logger, secretKey: secretKey}
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID           json.Number `json:"id"`
		Reference    string      `json:"reference"`
		TransferCode string      `json:"transfer_code"`
		Status       string      `json:"status"`
	} `json:"data"`
}

// Receive handles POST /api/webhooks/paystack
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]errorBody{
			"error": {Code: service.ErrCodeValidation, Message: "unreadable body"},
		})
		return
	}

	if !h.verifySignature(body, r.Header.Get(signatureHeader)) {
		h.logger.Warn("webhook signature rejected", "remote", r.RemoteAddr)
		respondJSON(w, http.StatusUnauthorized, map[string]errorBody{
			"error": {Code: service.ErrCodeSignatureInvalid, Message: "invalid signature"},
		})
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]errorBody{
			"error": {Code: service.ErrCodeValidation, Message: "invalid payload"},
		})
		return
	}

	sig, ok := h.signalFor(event)
	if !ok {
		h.logger.Debug("webhook event ignored", "event", event.Event)
		respondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if err := h.settlements.Resolve(r.Context(), sig); err != nil {
		// Non-2xx makes the gateway redeliver; settlement replay is safe.
		h.logger.Error("webhook settlement failed",
			"event", event.Event,
			"reference", sig.Reference,
			"error", err,
		)
		respondJSON(w, http.StatusInternalServerError, map[string]errorBody{
			"error": {Code: service.ErrCodeInternalError, Message: "settlement failed"},
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(h.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (h *WebhookHandler) signalFor(event webhookEvent) (service.Signal, bool) {
	sig := service.Signal{
		Reference: event.Data.Reference,
		EventID:   event.Data.ID.String(),
		Event:     event.Event,
		Source:    service.SignalSourceWebhook,
	}

	switch event.Event {
	case "charge.success":
		sig.Kind = service.SettlePaymentSuccess
		if id, err := event.Data.ID.Int64(); err == nil && id > 0 {
			sig.ExternalRef = strconv.FormatInt(id, 10)
		}
	case "charge.failed":
		sig.Kind = service.SettlePaymentFailure
	case "transfer.success":
		sig.Kind = service.SettlePayoutSuccess
		sig.ExternalRef = event.Data.TransferCode
	case "transfer.failed", "transfer.reversed":
		sig.Kind = service.SettlePayoutFailure
		sig.ExternalRef = event.Data.TransferCode
	default:
		return service.Signal{}, false
	}
	return sig, true
}

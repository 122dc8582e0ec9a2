package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/TheRightGift/coolpayServer/internal/service"
)

// idempotencyKeyHeader is the retry-safety header mutating endpoints accept.
const idempotencyKeyHeader = "Idempotency-Key"

// idempotencyKey returns the client's retry key. The header wins; the JSON
// body field stays as a fallback for clients that cannot set headers.
func idempotencyKey(r *http.Request, bodyKey string) string {
	if key := r.Header.Get(idempotencyKeyHeader); key != "" {
		return key
	}
	return bodyKey
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload) //nolint:errcheck // response write error is not actionable
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var svcErr *service.ServiceError
	if !errors.As(err, &svcErr) {
		logger.Error("unhandled error", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]errorBody{
			"error": {Code: service.ErrCodeInternalError, Message: "internal server error"},
		})
		return
	}

	status := statusForCode(svcErr.Code)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "code", svcErr.Code, "error", svcErr.Err)
	}
	respondJSON(w, status, map[string]errorBody{
		"error": {Code: svcErr.Code, Message: svcErr.Message},
	})
}

func statusForCode(code string) int {
	switch code {
	case service.ErrCodeValidation, service.ErrCodeAmountRequired,
		service.ErrCodeSelfPayment, service.ErrCodeConflict:
		return http.StatusBadRequest
	case service.ErrCodeSignatureInvalid:
		return http.StatusUnauthorized
	case service.ErrCodeInsufficientFunds:
		return http.StatusPaymentRequired
	case service.ErrCodeLinkInvalid, service.ErrCodeNotFound, service.ErrCodeWalletNotFound:
		return http.StatusNotFound
	case service.ErrCodeUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]errorBody{
			"error": {Code: service.ErrCodeValidation, Message: "invalid request body"},
		})
		return false
	}
	return true
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/TheRightGift/coolpayServer/internal/config"
	"github.com/TheRightGift/coolpayServer/internal/service"
	"github.com/shopspring/decimal"
)

// PaystackClient talks to the Paystack REST API. Amounts cross this
// boundary in major units and are converted to kobo on the wire.
type PaystackClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	secretKey  string
	baseURL    string
}

var _ service.Gateway = (*PaystackClient)(nil)

// NewPaystackClient creates a new PaystackClient
func NewPaystackClient(cfg config.PaystackConfig, logger *slog.Logger) *PaystackClient {
	return &PaystackClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		secretKey:  cfg.SecretKey,
		baseURL:    cfg.BaseURL,
	}
}

// envelope is the common Paystack response shape. Data stays raw so each
// call decodes only the fields it needs.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  bool            `json:"status"`
}

// InitializeCharge creates a hosted-checkout session.
func (c *PaystackClient) InitializeCharge(ctx context.Context, intent service.ChargeIntent) (*service.ChargeAuthorization, error) {
	payload := map[string]any{
		"email":     intent.Email,
		"amount":    toKobo(intent.Amount),
		"reference": intent.Reference,
	}
	if intent.CallbackURL != "" {
		payload["callback_url"] = intent.CallbackURL
	}
	if len(intent.Metadata) > 0 {
		payload["metadata"] = intent.Metadata
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	}
	if err := c.call(ctx, http.MethodPost, "/transaction/initialize", payload, &data); err != nil {
		return nil, fmt.Errorf("initialize charge: %w", err)
	}

	return &service.ChargeAuthorization{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
	}, nil
}

// VerifyCharge fetches the current state of a charge by our reference.
func (c *PaystackClient) VerifyCharge(ctx context.Context, reference string) (*service.ChargeStatus, error) {
	var data struct {
		Status string `json:"status"`
		ID     int64  `json:"id"`
	}
	if err := c.call(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &data); err != nil {
		return nil, fmt.Errorf("verify charge %s: %w", reference, err)
	}

	return &service.ChargeStatus{
		Status:     data.Status,
		ExternalID: strconv.FormatInt(data.ID, 10),
	}, nil
}

// CreateTransferRecipient registers a NUBAN bank account and returns its
// recipient code.
func (c *PaystackClient) CreateTransferRecipient(ctx context.Context, intent service.RecipientIntent) (string, error) {
	payload := map[string]any{
		"type":           "nuban",
		"name":           intent.Name,
		"account_number": intent.AccountNumber,
		"bank_code":      intent.BankCode,
		"currency":       "NGN",
	}

	var data struct {
		RecipientCode string `json:"recipient_code"`
	}
	if err := c.call(ctx, http.MethodPost, "/transferrecipient", payload, &data); err != nil {
		return "", fmt.Errorf("create transfer recipient: %w", err)
	}
	return data.RecipientCode, nil
}

// CheckAvailableBalance returns the NGN balance of the integration, in
// major units.
func (c *PaystackClient) CheckAvailableBalance(ctx context.Context) (decimal.Decimal, error) {
	var data []struct {
		Currency string `json:"currency"`
		Balance  int64  `json:"balance"`
	}
	if err := c.call(ctx, http.MethodGet, "/balance", nil, &data); err != nil {
		return decimal.Zero, fmt.Errorf("check balance: %w", err)
	}
	if len(data) == 0 {
		return decimal.Zero, fmt.Errorf("check balance: empty balance list")
	}
	return fromKobo(data[0].Balance), nil
}

// InitiateTransfer starts a payout from the integration balance and
// returns the transfer code.
func (c *PaystackClient) InitiateTransfer(ctx context.Context, intent service.TransferIntent) (string, error) {
	payload := map[string]any{
		"source":    "balance",
		"amount":    toKobo(intent.Amount),
		"recipient": intent.RecipientCode,
		"reference": intent.Reference,
		"reason":    intent.Reason,
	}

	var data struct {
		TransferCode string `json:"transfer_code"`
	}
	if err := c.call(ctx, http.MethodPost, "/transfer", payload, &data); err != nil {
		return "", fmt.Errorf("initiate transfer: %w", err)
	}
	return data.TransferCode, nil
}

// VerifyTransfer fetches the current state of a transfer by its code.
func (c *PaystackClient) VerifyTransfer(ctx context.Context, transferCode string) (*service.TransferStatus, error) {
	var data struct {
		Status string `json:"status"`
	}
	if err := c.call(ctx, http.MethodGet, "/transfer/"+transferCode, nil, &data); err != nil {
		return nil, fmt.Errorf("verify transfer %s: %w", transferCode, err)
	}
	return &service.TransferStatus{Status: data.Status}, nil
}

// ListBanks returns the supported NGN bank directory.
func (c *PaystackClient) ListBanks(ctx context.Context) ([]service.Bank, error) {
	var data []service.Bank
	if err := c.call(ctx, http.MethodGet, "/bank?currency=NGN", nil, &data); err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	return data, nil
}

func (c *PaystackClient) call(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() //nolint:errcheck // close error is not actionable
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response (http %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Status {
		c.logger.Warn("paystack request rejected",
			"method", method,
			"path", path,
			"http_status", resp.StatusCode,
			"message", env.Message,
		)
		return fmt.Errorf("paystack: %s (http %d)", env.Message, resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// toKobo converts a major-unit amount to integer kobo, rounding half up to
// absorb representation noise.
func toKobo(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func fromKobo(kobo int64) decimal.Decimal {
	return decimal.NewFromInt(kobo).Div(decimal.NewFromInt(100))
}

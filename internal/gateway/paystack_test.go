package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TheRightGift/coolpayServer/internal/config"
	"github.com/TheRightGift/coolpayServer/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *PaystackClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewPaystackClient(config.PaystackConfig{
		SecretKey: "sk_test_secret",
		BaseURL:   srv.URL,
		Timeout:   5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPaystackClient_InitializeCharge(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// 1500.50 naira wired as 150050 kobo
		assert.Equal(t, float64(150050), body["amount"])
		assert.Equal(t, "ada@example.test", body["email"])
		assert.Equal(t, "DEP-20250101-000000-AAAAAA", body["reference"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         "DEP-20250101-000000-AAAAAA",
			},
		})
	})

	auth, err := client.InitializeCharge(context.Background(), service.ChargeIntent{
		Amount:    decimal.RequireFromString("1500.50"),
		Email:     "ada@example.test",
		Reference: "DEP-20250101-000000-AAAAAA",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", auth.AuthorizationURL)
	assert.Equal(t, "abc123", auth.AccessCode)
}

func TestPaystackClient_VerifyCharge(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/DEP-20250101-000000-AAAAAA", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"id":     4099260516,
				"status": "success",
			},
		})
	})

	status, err := client.VerifyCharge(context.Background(), "DEP-20250101-000000-AAAAAA")

	require.NoError(t, err)
	assert.Equal(t, "success", status.Status)
	assert.Equal(t, "4099260516", status.ExternalID)
}

func TestPaystackClient_CheckAvailableBalance(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/balance", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": []map[string]any{
				{"currency": "NGN", "balance": 1700000},
			},
		})
	})

	balance, err := client.CheckAvailableBalance(context.Background())

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("17000")))
}

func TestPaystackClient_InitiateTransfer(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transfer", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "balance", body["source"])
		assert.Equal(t, float64(200000), body["amount"])
		assert.Equal(t, "RCP_xyz", body["recipient"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data":   map[string]any{"transfer_code": "TRF_abc"},
		})
	})

	code, err := client.InitiateTransfer(context.Background(), service.TransferIntent{
		Amount:        decimal.RequireFromString("2000"),
		RecipientCode: "RCP_xyz",
		Reference:     "WD-20250101-000000-CCCCCC",
		Reason:        "Withdrawal",
	})

	require.NoError(t, err)
	assert.Equal(t, "TRF_abc", code)
}

func TestPaystackClient_RejectedResponse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Invalid key",
		})
	})

	_, err := client.VerifyCharge(context.Background(), "DEP-20250101-000000-AAAAAA")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestPaystackClient_ListBanks(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bank", r.URL.Path)
		assert.Equal(t, "NGN", r.URL.Query().Get("currency"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": []map[string]any{
				{"name": "GTBank", "code": "058"},
				{"name": "Access Bank", "code": "044"},
			},
		})
	})

	banks, err := client.ListBanks(context.Background())

	require.NoError(t, err)
	require.Len(t, banks, 2)
	assert.Equal(t, "058", banks[0].Code)
}

func TestToKobo(t *testing.T) {
	assert.Equal(t, int64(100000), toKobo(decimal.RequireFromString("1000")))
	assert.Equal(t, int64(150050), toKobo(decimal.RequireFromString("1500.50")))
	assert.Equal(t, int64(10), toKobo(decimal.RequireFromString("0.1")))
}

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdempotencyKey(t *testing.T) {
	t.Run("header is honoured", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/wallet/withdraw", nil)
		r.Header.Set("Idempotency-Key", "retry-abc")

		assert.Equal(t, "retry-abc", idempotencyKey(r, ""))
	})

	t.Run("header wins over body field", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/deposits", nil)
		r.Header.Set("Idempotency-Key", "header-key")

		assert.Equal(t, "header-key", idempotencyKey(r, "body-key"))
	})

	t.Run("body field is the fallback", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/deposits", nil)

		assert.Equal(t, "body-key", idempotencyKey(r, "body-key"))
	})

	t.Run("empty when neither is set", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/deposits", nil)

		assert.Empty(t, idempotencyKey(r, ""))
	})
}

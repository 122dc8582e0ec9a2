package handlers

import (
	"net/http"

	"github.com/TheRightGift/coolpayServer/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDeps bundles the handler set and cross-cutting middleware for the
// HTTP surface.
type RouterDeps struct {
	Auth     *middleware.Authenticator
	Pay      *PayHandler
	Deposits *DepositHandler
	Wallet   *WalletHandler
	Webhooks *WebhookHandler
}

// NewRouter builds the full route tree. The pay prepare/checkout routes
// and the webhook endpoint are public; everything else under /api requires
// a bearer token.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/pay/{token}", func(r chi.Router) {
			r.Get("/prepare", deps.Pay.Prepare)
			r.Post("/checkout", deps.Pay.Checkout)
			r.With(deps.Auth.RequireAuth).Post("/execute", deps.Pay.Execute)
		})

		r.Post("/webhooks/paystack", deps.Webhooks.Receive)

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireAuth)

			r.Post("/deposits", deps.Deposits.Create)
			r.Get("/transactions", deps.Wallet.Transactions)
			r.Get("/banks", deps.Wallet.Banks)

			r.Route("/wallet", func(r chi.Router) {
				r.Post("/withdraw", deps.Wallet.Withdraw)
				r.Get("/refresh-balance", deps.Wallet.RefreshBalance)
				r.Get("/qr-code", deps.Wallet.PaymentLink)
				r.Post("/qr-code", deps.Wallet.RegeneratePaymentLink)
			})
		})
	})

	return r
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TheRightGift/coolpayServer/internal/config"
	"github.com/TheRightGift/coolpayServer/internal/db"
	"github.com/TheRightGift/coolpayServer/internal/gateway"
	"github.com/TheRightGift/coolpayServer/internal/handlers"
	"github.com/TheRightGift/coolpayServer/internal/middleware"
	"github.com/TheRightGift/coolpayServer/internal/repository"
	"github.com/TheRightGift/coolpayServer/internal/service"
	"github.com/TheRightGift/coolpayServer/internal/sweeper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting coolpay ledger",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	database, err := db.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	paystack := gateway.NewPaystackClient(cfg.Paystack, logger)

	payments := service.NewPaymentService(database, logger)
	deposits := service.NewDepositService(database, paystack, cfg.Deposit, cfg.Paystack.CallbackURL, logger)
	withdrawals := service.NewWithdrawalService(database, paystack, cfg.Withdrawal, logger)
	settlements := service.NewSettlementService(database, logger)
	wallets := service.NewWalletService(database, paystack, logger)
	links := service.NewLinkService(database, cfg.Server.BaseURL, logger)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, logger)

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:     auth,
		Pay:      handlers.NewPayHandler(payments, deposits, logger),
		Deposits: handlers.NewDepositHandler(deposits, logger),
		Wallet:   handlers.NewWalletHandler(wallets, withdrawals, links, logger),
		Webhooks: handlers.NewWebhookHandler(settlements, cfg.Paystack.SecretKey, logger),
	})

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	if cfg.Sweeper.Enabled {
		sw := sweeper.New(
			repository.NewTransactionRepository(database),
			settlements,
			paystack,
			cfg.Sweeper,
			logger,
		)
		go sw.Start(sweepCtx)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/TheRightGift/coolpayServer/internal/config"
	"github.com/TheRightGift/coolpayServer/internal/models"
	"github.com/TheRightGift/coolpayServer/internal/repository"
	"github.com/TheRightGift/coolpayServer/internal/service"
)

// SettlementResolver applies one settlement signal to the ledger.
type SettlementResolver interface {
	Resolve(ctx context.Context, sig service.Signal) error
}

// Sweeper periodically re-verifies pending entries against the gateway and
// feeds terminal outcomes through the same settlement path webhooks use.
// It is the safety net for lost or delayed webhooks.
type Sweeper struct {
	transactions repository.TransactionRepository
	resolver     SettlementResolver
	gateway      service.Gateway
	logger       *slog.Logger
	interval     time.Duration
	limit        int
}

// New creates a new Sweeper
func New(
	transactions repository.TransactionRepository,
	resolver SettlementResolver,
	gateway service.Gateway,
	cfg config.SweeperConfig,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		transactions: transactions,
		resolver:     resolver,
		gateway:      gateway,
		logger:       logger,
		interval:     cfg.Interval,
		limit:        cfg.Limit,
	}
}

// Start runs sweeps on the configured interval until the context is
// cancelled. The first sweep happens one interval in, not at startup.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started", "interval", s.interval, "limit", s.limit)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.logger.Error("sweep failed", "error", err)
			}
		}
	}
}

// RunOnce sweeps pending inflows then pending payouts. A failure on one
// entry is logged and the sweep moves on; the entry stays pending for the
// next pass.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	start := time.Now()
	payments, payouts := s.sweepPayments(ctx), s.sweepPayouts(ctx)
	s.logger.Info("sweep complete",
		"payments_resolved", payments,
		"payouts_resolved", payouts,
		"duration", time.Since(start),
	)
	return nil
}

func (s *Sweeper) sweepPayments(ctx context.Context) int {
	pending, err := s.transactions.ListPendingByPrefix(
		ctx,
		models.TransactionTypePayment,
		[]string{models.RefPrefixDeposit, models.RefPrefixCheckout},
		s.limit,
	)
	if err != nil {
		s.logger.Error("listing pending payments failed", "error", err)
		return 0
	}

	resolved := 0
	for _, txn := range pending {
		status, err := s.gateway.VerifyCharge(ctx, txn.Reference)
		if err != nil {
			s.logger.Warn("charge verification failed",
				"reference", txn.Reference,
				"error", err,
			)
			continue
		}

		kind, terminal := service.PaymentKindForStatus(status.Status)
		if !terminal {
			continue
		}

		if err := s.resolver.Resolve(ctx, service.Signal{
			Kind:        kind,
			Reference:   txn.Reference,
			ExternalRef: status.ExternalID,
			Source:      service.SignalSourceReconcile,
		}); err != nil {
			s.logger.Error("payment settlement failed",
				"reference", txn.Reference,
				"kind", kind,
				"error", err,
			)
			continue
		}
		resolved++
	}
	return resolved
}

func (s *Sweeper) sweepPayouts(ctx context.Context) int {
	pending, err := s.transactions.ListPendingByPrefix(
		ctx,
		models.TransactionTypePayout,
		[]string{models.RefPrefixWithdrawal},
		s.limit,
	)
	if err != nil {
		s.logger.Error("listing pending payouts failed", "error", err)
		return 0
	}

	resolved := 0
	for _, txn := range pending {
		if txn.ExternalRef == nil || *txn.ExternalRef == "" {
			// Transfer code never recorded; a webhook has to resolve this
			// one by reference.
			continue
		}

		status, err := s.gateway.VerifyTransfer(ctx, *txn.ExternalRef)
		if err != nil {
			s.logger.Warn("transfer verification failed",
				"reference", txn.Reference,
				"transfer_code", *txn.ExternalRef,
				"error", err,
			)
			continue
		}

		kind, terminal := service.PayoutKindForStatus(status.Status)
		if !terminal {
			continue
		}

		if err := s.resolver.Resolve(ctx, service.Signal{
			Kind:        kind,
			Reference:   txn.Reference,
			ExternalRef: *txn.ExternalRef,
			Source:      service.SignalSourceReconcile,
		}); err != nil {
			s.logger.Error("payout settlement failed",
				"reference", txn.Reference,
				"kind", kind,
				"error", err,
			)
			continue
		}
		resolved++
	}
	return resolved
}

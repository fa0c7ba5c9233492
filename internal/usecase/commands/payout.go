package commands

import (
	"context"
	"log/slog"
	"sort"

	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/payout"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/metrics"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

type ScheduleResult struct {
	Requests     []*payout.Request
	SkippedHosts []uuid.UUID
}

type PayoutCommands interface {
	ScheduleBatch(ctx context.Context, actor shared.Actor) (*ScheduleResult, error)
	// ScheduleDue is the sweeper entry point and carries no actor.
	ScheduleDue(ctx context.Context) (*ScheduleResult, error)
}

type payoutUseCaseImpl struct {
	uow        shared.UnitOfWork
	banks      shared.BankAccountLookup
	dispatcher *Dispatcher
	metrics    *metrics.Registry
	batchSize  int
	clock      clock.Clock
	logger     *slog.Logger
}

func NewPayoutUseCase(
	uow shared.UnitOfWork,
	banks shared.BankAccountLookup,
	dispatcher *Dispatcher,
	reg *metrics.Registry,
	batchSize int,
	clk clock.Clock,
	logger *slog.Logger,
) PayoutCommands {
	return &payoutUseCaseImpl{
		uow:        uow,
		banks:      banks,
		dispatcher: dispatcher,
		metrics:    reg,
		batchSize:  batchSize,
		clock:      clk,
		logger:     logger,
	}
}

func (uc *payoutUseCaseImpl) ScheduleBatch(ctx context.Context, actor shared.Actor) (*ScheduleResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	return uc.ScheduleDue(ctx)
}

// ScheduleDue groups settled, unpaid host shares into one request per host and currency. Hosts
// without a default bank account are skipped until they add one.
func (uc *payoutUseCaseImpl) ScheduleDue(ctx context.Context) (*ScheduleResult, error) {
	now := uc.clock.Now()
	var (
		fx     *effects
		result *ScheduleResult
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx, result = &effects{}, &ScheduleResult{}

		settled, err := tx.Escrows().ListUnpaidSettled(ctx, uc.batchSize)
		if err != nil {
			return err
		}

		type groupKey struct {
			host     uuid.UUID
			currency string
		}
		groups := map[groupKey][]payout.Item{}
		var keys []groupKey
		for _, s := range settled {
			if !s.HostShare.Amount().IsPositive() {
				continue
			}
			k := groupKey{host: s.HostID, currency: s.HostShare.Currency()}
			if _, ok := groups[k]; !ok {
				keys = append(keys, k)
			}
			groups[k] = append(groups[k], payout.Item{
				BookingID: s.BookingID,
				Amount:    s.HostShare,
				Source:    payoutSource(s.Status),
			})
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].host != keys[j].host {
				return keys[i].host.String() < keys[j].host.String()
			}
			return keys[i].currency < keys[j].currency
		})

		accounts := map[uuid.UUID]*shared.BankAccountSnapshot{}
		skipped := map[uuid.UUID]bool{}
		for _, k := range keys {
			if skipped[k.host] {
				continue
			}
			account, ok := accounts[k.host]
			if !ok {
				account, err = uc.banks.DefaultBankAccount(ctx, k.host)
				if err != nil && !infra.IsKind(err, infra.KindNotFound) {
					return err
				}
				if account == nil {
					uc.logger.Warn("host has no default bank account, payout deferred", "host_id", k.host)
					skipped[k.host] = true
					result.SkippedHosts = append(result.SkippedHosts, k.host)
					continue
				}
				accounts[k.host] = account
			}

			req, err := payout.NewRequest(k.host, account.ID, groups[k], now)
			if err != nil {
				return err
			}
			if err := tx.Payouts().Create(ctx, req); err != nil {
				return err
			}
			result.Requests = append(result.Requests, req)
			fx.notify(k.host, shared.NotifyPayoutRequested, map[string]any{
				"payout_id": req.ID(),
				"amount":    req.Amount().String(),
				"items":     len(req.Items()),
			})
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	uc.metrics.PayoutRequested(len(result.Requests))
	uc.dispatcher.dispatch(ctx, fx)
	return result, nil
}

func payoutSource(status string) payout.Source {
	if status == string(escrow.StatusSplit) {
		return payout.SourceSplit
	}
	return payout.SourceReleased
}

package commands

import (
	"context"
	"sort"

	"rental-escrow/internal/domain/commission"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

type RateChange struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}

type UpdateRatesInput struct {
	Changes []RateChange `json:"rates"`
	Reason  string       `json:"reason"`
}

type UpdateRatesResult struct {
	Rates   []*commission.Rate
	History []commission.HistoryEntry
}

type CommissionCommands interface {
	UpdateRates(ctx context.Context, in UpdateRatesInput, actor shared.Actor) (*UpdateRatesResult, error)
}

type commissionUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCommissionUseCase(uow shared.UnitOfWork, clk clock.Clock) CommissionCommands {
	return &commissionUseCaseImpl{uow: uow, clock: clk}
}

// UpdateRates applies every change or none. Unchanged values leave no history entry; rows are
// locked in category order.
func (uc *commissionUseCaseImpl) UpdateRates(ctx context.Context, in UpdateRatesInput, actor shared.Actor) (*UpdateRatesResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if len(in.Changes) == 0 {
		return nil, ErrNoChanges
	}

	type change struct {
		category commission.Category
		value    decimal.Decimal
	}
	changes := make([]change, 0, len(in.Changes))
	seen := map[commission.Category]bool{}
	for _, c := range in.Changes {
		cat, err := commission.NewCategory(c.Category)
		if err != nil {
			return nil, classify(err)
		}
		if seen[cat] {
			return nil, errs.Wrap(ErrDuplicateCategory, string(cat))
		}
		seen[cat] = true
		changes = append(changes, change{category: cat, value: c.Value})
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].category < changes[j].category })

	now := uc.clock.Now()
	var result *UpdateRatesResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = &UpdateRatesResult{}
		for _, c := range changes {
			rate, err := tx.Commissions().GetForUpdate(ctx, c.category)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Wrap(ErrRateNotConfigured, string(c.category))
				}
				return err
			}
			version := rate.Version()
			entry, err := rate.Change(c.value, actor.ID, in.Reason, now)
			if err != nil {
				return err
			}
			result.Rates = append(result.Rates, rate)
			if entry == nil {
				continue
			}
			if err := tx.Commissions().Update(ctx, rate, version); err != nil {
				return err
			}
			if err := tx.Commissions().AppendHistory(ctx, *entry); err != nil {
				return err
			}
			result.History = append(result.History, *entry)
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return result, nil
}

package queries

import (
	"context"
	"sort"

	"rental-escrow/internal/domain/commission"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"
)

type CommissionQueries interface {
	ListRates(ctx context.Context, actor shared.Actor) ([]*CommissionRateView, error)
	History(ctx context.Context, category string, limit int, actor shared.Actor) ([]*CommissionHistoryView, error)
}

type commissionQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewCommissionQueries(uow shared.UnitOfWork) CommissionQueries {
	return &commissionQueriesImpl{uow: uow}
}

func (q *commissionQueriesImpl) ListRates(ctx context.Context, actor shared.Actor) ([]*CommissionRateView, error) {
	if !actor.IsAdmin() {
		return nil, commands.ErrAdminOnly
	}
	var views []*CommissionRateView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		rates, err := tx.Commissions().ListRates(ctx)
		if err != nil {
			return err
		}
		views = make([]*CommissionRateView, 0, len(rates))
		for _, r := range rates {
			views = append(views, NewCommissionRateView(r))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Category < views[j].Category })
	return views, nil
}

// History returns the newest changes first.
func (q *commissionQueriesImpl) History(ctx context.Context, category string, limit int, actor shared.Actor) ([]*CommissionHistoryView, error) {
	if !actor.IsAdmin() {
		return nil, commands.ErrAdminOnly
	}
	cat, err := commission.NewCategory(category)
	if err != nil {
		return nil, errs.Mark(err, commands.ErrValidation)
	}
	limit = ValidateLimit(limit)
	var views []*CommissionHistoryView
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		entries, err := tx.Commissions().History(ctx, cat, limit)
		if err != nil {
			return err
		}
		views = make([]*CommissionHistoryView, 0, len(entries))
		for _, e := range entries {
			views = append(views, NewCommissionHistoryView(e))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func NewCommissionRateView(r *commission.Rate) *CommissionRateView {
	return &CommissionRateView{
		Category:  r.Category().String(),
		Value:     r.Value().String(),
		MinValue:  r.MinValue().String(),
		MaxValue:  r.MaxValue().String(),
		Version:   r.Version(),
		UpdatedBy: r.UpdatedBy(),
		UpdatedAt: r.UpdatedAt(),
	}
}

func NewCommissionHistoryView(e commission.HistoryEntry) *CommissionHistoryView {
	return &CommissionHistoryView{
		Category:      e.Category.String(),
		PreviousValue: e.PreviousValue.String(),
		NewValue:      e.NewValue.String(),
		ChangedBy:     e.ChangedBy,
		ChangedAt:     e.ChangedAt,
		Reason:        e.Reason,
	}
}

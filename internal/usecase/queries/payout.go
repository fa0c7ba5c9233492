package queries

import (
	"context"

	"rental-escrow/internal/domain/payout"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

type PayoutQueries interface {
	List(ctx context.Context, hostID *uuid.UUID, limit int, actor shared.Actor) ([]*PayoutView, error)
}

type payoutQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewPayoutQueries(uow shared.UnitOfWork) PayoutQueries {
	return &payoutQueriesImpl{uow: uow}
}

func (q *payoutQueriesImpl) List(ctx context.Context, hostID *uuid.UUID, limit int, actor shared.Actor) ([]*PayoutView, error) {
	if !actor.IsAdmin() {
		return nil, commands.ErrAdminOnly
	}
	limit = ValidateLimit(limit)
	var views []*PayoutView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Payouts().List(ctx, hostID, limit)
		if err != nil {
			return err
		}
		views = make([]*PayoutView, 0, len(rows))
		for _, r := range rows {
			views = append(views, NewPayoutView(r))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func NewPayoutView(r *payout.Request) *PayoutView {
	v := &PayoutView{
		ID:            r.ID(),
		HostID:        r.HostID(),
		BankAccountID: r.BankAccountID(),
		Amount:        NewMoneyView(r.Amount()),
		Status:        string(r.Status()),
		Items:         make([]PayoutItemView, 0, len(r.Items())),
		CreatedAt:     r.CreatedAt(),
	}
	for _, it := range r.Items() {
		v.Items = append(v.Items, PayoutItemView{BookingID: it.BookingID, Amount: NewMoneyView(it.Amount), Source: string(it.Source)})
	}
	return v
}

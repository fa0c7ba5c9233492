package queries

import (
	"context"

	"rental-escrow/internal/infra"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.Mark(errs.New("user not found"), commands.ErrNotFound)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*CurrentUserView, error)
}

type userQueriesImpl struct {
	users shared.UserLookup
}

func NewUserQueries(users shared.UserLookup) UserQueries {
	return &userQueriesImpl{
		users: users,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*CurrentUserView, error) {
	u, err := q.users.UserByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &CurrentUserView{
		ID:       u.ID(),
		Email:    u.Email().Value(),
		FullName: u.FullName(),
		Role:     u.Role().String(),
	}, nil
}

//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/infra/repository"
	"rental-escrow/internal/pkg/pgconv"
	repositorymock "rental-escrow/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEscrowRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		queryErr   error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: escrow held"},
		{
			name:       "error: booking already has an escrow",
			queryErr:   &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name:       "error: booking row missing",
			queryErr:   &pgconn.PgError{Code: "23503", Message: "insert or update violates foreign key constraint"},
			expectKind: infra.KindForeignKeyViolated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockEscrowQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewEscrowRepository(mockQueries, mockDB)

			e, _, err := escrow.Hold(uuid.New(), money.MustNew("16240", "DZD"), now.Add(72*time.Hour), now)
			require.NoError(t, err)

			mockQueries.EXPECT().
				CreateEscrow(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ pgq.DBTX, row pgq.Escrows) error {
					assert.Equal(t, e.BookingID(), row.BookingID)
					assert.Equal(t, "held", row.Status)
					return tc.queryErr
				})

			actualError := repo.Create(ctx, e)

			if tc.expectKind != "" {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

func TestEscrowRepository_GetByBookingForUpdate(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()
	at := pgconv.TimeToPgtype(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	legacy := pgq.Escrows{
		ID:                uuid.New(),
		BookingID:         bookingID,
		HeldAmount:        pgconv.DecimalToNumeric(decimal.RequireFromString("16240")),
		Currency:          "DZD",
		Status:            "disputed",
		ReleaseEligibleAt: at,
		CreatedAt:         at,
		UpdatedAt:         at,
	}

	t.Run("legacy disputed status reads as frozen", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockEscrowQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewEscrowRepository(mockQueries, mockDB)

		mockQueries.EXPECT().GetEscrowByBookingForUpdate(ctx, mockDB, bookingID).Return(legacy, nil)

		e, err := repo.GetByBookingForUpdate(ctx, bookingID)
		require.NoError(t, err)
		assert.True(t, e.Status().IsFrozen())
		assert.Equal(t, "16240.00 DZD", e.Held().String())
	})

	t.Run("missing escrow is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockEscrowQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewEscrowRepository(mockQueries, mockDB)

		mockQueries.EXPECT().GetEscrowByBookingForUpdate(ctx, mockDB, bookingID).Return(pgq.Escrows{}, pgx.ErrNoRows)

		e, err := repo.GetByBookingForUpdate(ctx, bookingID)
		require.Error(t, err)
		assert.Nil(t, e)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestEscrowRepository_ListUnpaidSettled(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueries := repositorymock.NewMockEscrowQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewEscrowRepository(mockQueries, mockDB)

	hostID := uuid.New()
	released := pgq.ListUnpaidSettledEscrowsRow{
		BookingID:  uuid.New(),
		HostID:     hostID,
		Status:     "released",
		Currency:   "DZD",
		HostPayout: pgconv.DecimalToNumeric(decimal.RequireFromString("15035")),
	}
	split := pgq.ListUnpaidSettledEscrowsRow{
		BookingID:  uuid.New(),
		HostID:     hostID,
		Status:     "split",
		Currency:   "DZD",
		HostPayout: pgconv.DecimalToNumeric(decimal.RequireFromString("15035")),
		HostShare:  pgconv.DecimalToNumeric(decimal.RequireFromString("11368")),
	}
	fullRefund := pgq.ListUnpaidSettledEscrowsRow{
		BookingID:  uuid.New(),
		HostID:     hostID,
		Status:     "split",
		Currency:   "DZD",
		HostPayout: pgconv.DecimalToNumeric(decimal.RequireFromString("15035")),
		HostShare:  pgconv.DecimalToNumeric(decimal.Zero),
	}
	mockQueries.EXPECT().
		ListUnpaidSettledEscrows(ctx, mockDB, int32(100)).
		Return([]pgq.ListUnpaidSettledEscrowsRow{released, split, fullRefund}, nil)

	got, err := repo.ListUnpaidSettled(ctx, 100)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, released.BookingID, got[0].BookingID)
	assert.Equal(t, "15035.00 DZD", got[0].HostShare.String())
	assert.Equal(t, split.BookingID, got[1].BookingID)
	assert.Equal(t, "11368.00 DZD", got[1].HostShare.String())
}

func TestEscrowRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueries := repositorymock.NewMockEscrowQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewEscrowRepository(mockQueries, mockDB)

	e, _, err := escrow.Hold(uuid.New(), money.MustNew("16240", "DZD"), now, now)
	require.NoError(t, err)
	_, err = e.Release(now)
	require.NoError(t, err)

	mockQueries.EXPECT().
		UpdateEscrowState(ctx, mockDB, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgq.DBTX, arg pgq.UpdateEscrowStateParams) (int64, error) {
			assert.Equal(t, "held", arg.ExpectedStatus)
			assert.Equal(t, "released", arg.Status)
			assert.True(t, arg.ReleasedAt.Valid)
			return 0, nil
		})

	err = repo.Update(ctx, e, escrow.StatusHeld)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindStaleState))
}

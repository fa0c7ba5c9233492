//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/infra/repository"
	"rental-escrow/internal/infra/repository/converter"
	"rental-escrow/tests/common/builder"
	repositorymock "rental-escrow/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Create Booking Tests
// =============================================================================

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockBookingQueries, pgq.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: booking created",
			setupMock: func(mock *repositorymock.MockBookingQueries, db pgq.DBTX) {
				mock.EXPECT().CreateBooking(ctx, db, gomock.Any()).Return(nil)
			},
		},
		{
			name: "error: overlapping stay rejected by exclusion constraint",
			setupMock: func(mock *repositorymock.MockBookingQueries, db pgq.DBTX) {
				overlap := &pgconn.PgError{Code: "23P01", Message: "conflicting key value violates exclusion constraint"}
				mock.EXPECT().CreateBooking(ctx, db, gomock.Any()).Return(overlap)
			},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
		{
			name: "error: database connection lost",
			setupMock: func(mock *repositorymock.MockBookingQueries, db pgq.DBTX) {
				mock.EXPECT().CreateBooking(ctx, db, gomock.Any()).Return(errors.New("connection reset"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries, mockDB)

			b, err := builder.NewBookingBuilder().BuildDomain()
			require.NoError(t, err)

			tc.setupMock(mockQueries, mockDB)

			actualError := repo.Create(ctx, b)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

// =============================================================================
// Get Booking Tests
// =============================================================================

func TestBookingRepository_Get(t *testing.T) {
	ctx := context.Background()

	confirmed, err := builder.NewBookingBuilder().BuildConfirmed()
	require.NoError(t, err)
	stored := converter.BookingToRow(confirmed)

	testCases := []struct {
		name       string
		row        pgq.Bookings
		queryErr   error
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: row converted back to the aggregate",
			row:  stored,
		},
		{
			name:       "error: booking does not exist",
			queryErr:   pgx.ErrNoRows,
			expectKind: infra.KindNotFound,
		},
		{
			name: "error: corrupted status in row",
			row: func() pgq.Bookings {
				r := stored
				r.Status = "teleported"
				return r
			}(),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries, mockDB)

			mockQueries.EXPECT().GetBooking(ctx, mockDB, confirmed.ID()).Return(tc.row, tc.queryErr)

			got, actualError := repo.Get(ctx, confirmed.ID())

			if tc.expectKind != "" {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualError)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, actualError)
			assert.Equal(t, confirmed.ID(), got.ID())
			assert.Equal(t, booking.StatusConfirmed, got.Status())
			assert.True(t, confirmed.Pricing().TotalAmount.Equal(got.Pricing().TotalAmount))
			assert.Equal(t, confirmed.Payment(), got.Payment())
		})
	}
}

// =============================================================================
// Update Booking Tests
// =============================================================================

func TestBookingRepository_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		rowsAffected  int64
		queryErr      error
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name:         "success: status matched and row updated",
			rowsAffected: 1,
		},
		{
			name:          "error: status moved on concurrently",
			rowsAffected:  0,
			expectedError: true,
			expectKind:    infra.KindStaleState,
		},
		{
			name:          "error: database error occurs",
			queryErr:      errors.New("database connection error"),
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries, mockDB)

			b, err := builder.NewBookingBuilder().BuildConfirmed()
			require.NoError(t, err)

			mockQueries.EXPECT().
				UpdateBookingState(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ pgq.DBTX, arg pgq.UpdateBookingStateParams) (int64, error) {
					assert.Equal(t, string(booking.StatusPendingPayment), arg.ExpectedStatus)
					assert.Equal(t, string(booking.StatusConfirmed), arg.Status)
					assert.Equal(t, b.ID(), arg.ID)
					return tc.rowsAffected, tc.queryErr
				})

			actualError := repo.Update(ctx, b, booking.StatusPendingPayment)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

func TestBookingRepository_ListPaymentOverdue(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueries := repositorymock.NewMockBookingQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewBookingRepository(mockQueries, mockDB)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	mockQueries.EXPECT().ListPaymentOverdueBookings(ctx, mockDB, gomock.Any(), int32(50)).Return(ids, nil)

	got, err := repo.ListPaymentOverdue(ctx, builder.NewBookingBuilder().Now, 50)
	require.NoError(t, err)
	assert.Equal(t, ids, got)
}

func TestBookingRepository_ListUnaccepted(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueries := repositorymock.NewMockBookingQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewBookingRepository(mockQueries, mockDB)
	now := builder.NewBookingBuilder().Now

	ids := []uuid.UUID{uuid.New()}
	mockQueries.EXPECT().ListUnacceptedBookings(ctx, mockDB, gomock.Any(), int32(50)).Return(ids, nil)

	got, err := repo.ListUnaccepted(ctx, now, 50)
	require.NoError(t, err)
	assert.Equal(t, ids, got)
}

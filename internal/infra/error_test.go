//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"rental-escrow/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPgErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want infra.RepositoryErrorKind
	}{
		{"no rows", pgx.ErrNoRows, infra.KindNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, infra.KindDuplicateKey},
		{"foreign key", &pgconn.PgError{Code: "23503"}, infra.KindForeignKeyViolated},
		{"overlap", &pgconn.PgError{Code: "23P01"}, infra.KindConflict},
		{"check", &pgconn.PgError{Code: "23514"}, infra.KindConstraint},
		{"other pg", &pgconn.PgError{Code: "XX000"}, infra.KindDBFailure},
		{"plain", errors.New("connection reset"), infra.KindDBFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := infra.ClassifyPgErr("op", tt.err)
			assert.True(t, infra.IsKind(err, tt.want), "got %v", err)
		})
	}

	assert.NoError(t, infra.ClassifyPgErr("op", nil))
}

func TestClassifyPgErr_KeepsDriverError(t *testing.T) {
	err := infra.ClassifyPgErr("op", &pgconn.PgError{Code: "40001"})

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "40001", pgErr.Code)
}

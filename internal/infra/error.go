package infra

import (
	"errors"

	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(kind RepositoryErrorKind, msg string, err error) error {
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: kind, msg: msg, err: err}
}

// ClassifyPgErr maps a driver error onto a repository kind. Serialization failures and deadlocks
// keep the original *pgconn.PgError reachable so the unit of work can retry them.
func ClassifyPgErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	if pgconv.IsNoRows(err) {
		return WrapRepoErr(KindNotFound, msg, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return WrapRepoErr(KindDuplicateKey, msg, err)
		case pgErrForeignKeyViolation:
			return WrapRepoErr(KindForeignKeyViolated, msg, err)
		case pgErrExclusionViolation:
			return WrapRepoErr(KindConflict, msg, err)
		case pgErrCheckViolation:
			return WrapRepoErr(KindConstraint, msg, err)
		}
	}
	return WrapRepoErr(KindDBFailure, msg, err)
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrCheckViolation      = "23514"
	pgErrExclusionViolation  = "23P01"
)

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConstraint         RepositoryErrorKind = "CONSTRAINT_VIOLATED"
	// KindConflict: an exclusion constraint rejected overlapping rows (double-booked dates).
	KindConflict RepositoryErrorKind = "CONFLICT"
	// KindStaleState: a compare-and-set update matched no row because the status moved on.
	KindStaleState RepositoryErrorKind = "STALE_STATE"
)

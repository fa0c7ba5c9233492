package pgq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const listCommissionRates = `-- name: ListCommissionRates :many
SELECT category, value, min_value, max_value, version, updated_by, updated_at
FROM commission_rates ORDER BY category`

func (q *Queries) ListCommissionRates(ctx context.Context, db DBTX) ([]CommissionRates, error) {
	rows, err := db.Query(ctx, listCommissionRates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CommissionRates
	for rows.Next() {
		var i CommissionRates
		if err := rows.Scan(
			&i.Category,
			&i.Value,
			&i.MinValue,
			&i.MaxValue,
			&i.Version,
			&i.UpdatedBy,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getCommissionRateForUpdate = `-- name: GetCommissionRateForUpdate :one
SELECT category, value, min_value, max_value, version, updated_by, updated_at
FROM commission_rates WHERE category = $1 FOR UPDATE`

func (q *Queries) GetCommissionRateForUpdate(ctx context.Context, db DBTX, category string) (CommissionRates, error) {
	var i CommissionRates
	err := db.QueryRow(ctx, getCommissionRateForUpdate, category).Scan(
		&i.Category,
		&i.Value,
		&i.MinValue,
		&i.MaxValue,
		&i.Version,
		&i.UpdatedBy,
		&i.UpdatedAt,
	)
	return i, err
}

const updateCommissionRate = `-- name: UpdateCommissionRate :execrows
UPDATE commission_rates
SET value = $3, version = $4, updated_by = $5, updated_at = $6
WHERE category = $1 AND version = $2`

type UpdateCommissionRateParams struct {
	Category        string
	ExpectedVersion int64
	Value           pgtype.Numeric
	Version         int64
	UpdatedBy       pgtype.UUID
	UpdatedAt       pgtype.Timestamptz
}

func (q *Queries) UpdateCommissionRate(ctx context.Context, db DBTX, arg UpdateCommissionRateParams) (int64, error) {
	result, err := db.Exec(ctx, updateCommissionRate,
		arg.Category,
		arg.ExpectedVersion,
		arg.Value,
		arg.Version,
		arg.UpdatedBy,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const insertCommissionHistory = `-- name: InsertCommissionHistory :exec
INSERT INTO commission_rate_history (category, previous_value, new_value, changed_by, changed_at, reason)
VALUES ($1, $2, $3, $4, $5, $6)`

type InsertCommissionHistoryParams struct {
	Category      string
	PreviousValue pgtype.Numeric
	NewValue      pgtype.Numeric
	ChangedBy     uuid.UUID
	ChangedAt     pgtype.Timestamptz
	Reason        string
}

func (q *Queries) InsertCommissionHistory(ctx context.Context, db DBTX, arg InsertCommissionHistoryParams) error {
	_, err := db.Exec(ctx, insertCommissionHistory,
		arg.Category,
		arg.PreviousValue,
		arg.NewValue,
		arg.ChangedBy,
		arg.ChangedAt,
		arg.Reason,
	)
	return err
}

const listCommissionHistory = `-- name: ListCommissionHistory :many
SELECT id, category, previous_value, new_value, changed_by, changed_at, reason
FROM commission_rate_history
WHERE category = $1
ORDER BY changed_at DESC, id DESC
LIMIT $2`

func (q *Queries) ListCommissionHistory(ctx context.Context, db DBTX, category string, limit int32) ([]CommissionRateHistory, error) {
	rows, err := db.Query(ctx, listCommissionHistory, category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CommissionRateHistory
	for rows.Next() {
		var i CommissionRateHistory
		if err := rows.Scan(
			&i.ID,
			&i.Category,
			&i.PreviousValue,
			&i.NewValue,
			&i.ChangedBy,
			&i.ChangedAt,
			&i.Reason,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

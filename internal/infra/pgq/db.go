// Package pgq holds the SQL statements and row types used by the Postgres repositories and read
// stores. It follows the sqlc layout (one Queries value, the connection passed per call) so a
// statement can run on the pool or inside a unit-of-work transaction.
package pgq

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct{}

func New() *Queries {
	return &Queries{}
}

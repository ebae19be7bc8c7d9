package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Tables holds the already quoted table identifiers used in the queries.
type Tables struct {
	Observations string
	UV           string
}

type Queries struct {
	db     DBTX
	tables Tables
}

// New quotes the table names (optionally schema qualified, e.g. "public.uv_melbourne")
// so they can be placed into statements.
func New(db DBTX, observations, uv string) *Queries {
	return &Queries{
		db: db,
		tables: Tables{
			Observations: quoteTable(observations),
			UV:           quoteTable(uv),
		},
	}
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx, tables: q.tables}
}

func (q *Queries) WithConn(db DBTX) *Queries {
	return &Queries{db: db, tables: q.tables}
}

func quoteTable(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

func sprintfTable(query, table string) string {
	return fmt.Sprintf(query, table)
}

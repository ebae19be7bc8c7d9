package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const findByMinute = `-- name: FindByMinute :many
SELECT * FROM %s
WHERE to_char(date_time, 'YYYY-MM-DD HH24:MI') = $1
`

// FindByMinute returns every row whose date_time falls in the given
// "YYYY-MM-DD HH:MM" minute, column name to value.
func (q *Queries) FindByMinute(ctx context.Context, minute string) ([]map[string]any, error) {
	rows, err := q.db.Query(ctx, sprintfTable(findByMinute, q.tables.Observations), minute)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToMap)
}

const latestUVByLocation = `-- name: LatestUVByLocation :one
SELECT uv_index FROM %s
WHERE location = $1 OR postcode = $1
ORDER BY timestamp DESC
LIMIT 1
`

func (q *Queries) LatestUVByLocation(ctx context.Context, location string) (pgtype.Float8, error) {
	var uv pgtype.Float8
	err := q.db.QueryRow(ctx, sprintfTable(latestUVByLocation, q.tables.UV), location).Scan(&uv)
	return uv, err
}

const ping = `SELECT 1`

func (q *Queries) Ping(ctx context.Context) error {
	var one int
	return q.db.QueryRow(ctx, ping).Scan(&one)
}

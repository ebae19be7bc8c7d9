package db

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// InsertObservations writes rows of text values into the observation table.
// The statement runs over the simple protocol so the server coerces each
// literal to its column type; empty strings become NULL.
func (q *Queries) InsertObservations(ctx context.Context, columns []string, rows [][]string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(q.tables.Observations)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(quoted, ", "))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(columns)+1)
	args = append(args, pgx.QueryExecModeSimpleProtocol)
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			args = append(args, nullableString(v))
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(len(args) - 1))
		}
		sb.WriteByte(')')
	}

	tag, err := q.db.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	sql  string
	args []any
	err  error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql, f.args = sql, args
	if f.err != nil {
		return pgconn.CommandTag{}, f.err
	}
	return pgconn.NewCommandTag("INSERT 0 2"), nil
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.sql, f.args = sql, args
	return nil, f.err
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.sql, f.args = sql, args
	return fakeRow{err: f.err}
}

type fakeRow struct {
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int) = 1
	return nil
}

func TestQuoteTable(t *testing.T) {
	assert.Equal(t, `"uv_melbourne"`, quoteTable("uv_melbourne"))
	assert.Equal(t, `"public"."uv_melbourne"`, quoteTable("public.uv_melbourne"))
	assert.Equal(t, `"bad""name"`, quoteTable(`bad"name`))
}

func TestInsertObservations_BuildsMultiRowInsert(t *testing.T) {
	f := &fakeDB{}
	q := New(f, "uv_melbourne", "uv_data_test")

	n, err := q.InsertObservations(context.Background(),
		[]string{"date_time", "uv_index"},
		[][]string{
			{"2024-01-01 09:30:00", "3.2"},
			{"2024-01-01 09:31:00", ""},
		},
	)

	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, `INSERT INTO "uv_melbourne" ("date_time", "uv_index") VALUES ($1, $2), ($3, $4)`, f.sql)
	require.Len(t, f.args, 5)
	assert.Equal(t, pgx.QueryExecModeSimpleProtocol, f.args[0])
	assert.Equal(t, "2024-01-01 09:30:00", f.args[1])
	assert.Nil(t, f.args[4])
}

func TestInsertObservations_Empty(t *testing.T) {
	f := &fakeDB{}
	q := New(f, "uv_melbourne", "uv_data_test")

	n, err := q.InsertObservations(context.Background(), []string{"date_time"}, nil)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.sql)
}

func TestInsertObservations_Error(t *testing.T) {
	f := &fakeDB{err: errors.New("boom")}
	q := New(f, "uv_melbourne", "uv_data_test")

	_, err := q.InsertObservations(context.Background(), []string{"date_time"}, [][]string{{"x"}})

	assert.EqualError(t, err, "boom")
}

func TestFindByMinute_UsesKeyAsParameter(t *testing.T) {
	f := &fakeDB{err: errors.New("down")}
	q := New(f, "public.uv_melbourne", "uv_data_test")

	_, err := q.FindByMinute(context.Background(), "2024-01-01 09:30")

	assert.Error(t, err)
	assert.Contains(t, f.sql, `FROM "public"."uv_melbourne"`)
	assert.Contains(t, f.sql, "to_char(date_time, 'YYYY-MM-DD HH24:MI') = $1")
	assert.Equal(t, []any{"2024-01-01 09:30"}, f.args)
}

func TestPing(t *testing.T) {
	f := &fakeDB{}
	q := New(f, "uv_melbourne", "uv_data_test")

	require.NoError(t, q.Ping(context.Background()))
	assert.Equal(t, "SELECT 1", f.sql)
}

func TestPing_Error(t *testing.T) {
	f := &fakeDB{err: errors.New("connection refused")}
	q := New(f, "uv_melbourne", "uv_data_test")

	assert.Error(t, q.Ping(context.Background()))
}

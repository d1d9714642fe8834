package postgres

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
)

// fakeDB answers statements by matching a fragment of the normalized SQL.
type fakeDB struct {
	queries    []fakeQuery
	execs      []fakeExec
	statements []string
	begun      int
	committed  int
	rolledBack int
}

type fakeQuery struct {
	match string
	rows  func(args []any) [][]any
}

type fakeExec struct {
	match    string
	affected int64
}

func newFakeDB() *fakeDB {
	return &fakeDB{}
}

func (f *fakeDB) onQuery(match string, rows func(args []any) [][]any) {
	f.queries = append(f.queries, fakeQuery{match: match, rows: rows})
}

func (f *fakeDB) onExec(match string, affected int64) {
	f.execs = append(f.execs, fakeExec{match: match, affected: affected})
}

func normalize(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}

func (f *fakeDB) lookup(sql string, args []any) ([][]any, error) {
	sql = normalize(sql)
	f.statements = append(f.statements, sql)
	for _, q := range f.queries {
		if strings.Contains(sql, q.match) {
			return q.rows(args), nil
		}
	}
	return nil, fmt.Errorf("fakeDB: unexpected query %q", sql)
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := f.lookup(sql, args)
	if err != nil {
		return nil, err
	}
	return &fakeRows{rows: rows, pos: -1}, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	rows, err := f.lookup(sql, args)
	if err != nil {
		return &fakeRow{err: err}
	}
	if len(rows) == 0 {
		return &fakeRow{err: pgx.ErrNoRows}
	}
	return &fakeRow{values: rows[0]}
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	sql = normalize(sql)
	f.statements = append(f.statements, sql)
	for _, e := range f.execs {
		if strings.Contains(sql, e.match) {
			return fakeTag(e.affected), nil
		}
	}
	return nil, fmt.Errorf("fakeDB: unexpected exec %q", sql)
}

func (f *fakeDB) Begin(ctx context.Context) (Tx, error) {
	f.begun++
	return &fakeTx{db: f}, nil
}

func (f *fakeDB) Close() {}

type fakeTx struct {
	db   *fakeDB
	done bool
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return t.db.Query(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return t.db.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return t.db.Exec(ctx, sql, args...)
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.db.committed++
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.db.rolledBack++
	return nil
}

type fakeTag int64

func (t fakeTag) RowsAffected() int64 { return int64(t) }

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	return assign(dest, r.rows[r.pos])
}

func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Close() {}

type fakeRow struct {
	values []any
	err    error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.values)
}

// assign copies values into scan destinations, converting between
// compatible kinds the way the driver would.
func assign(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("fakeDB: %d destinations for %d columns", len(dest), len(values))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		if values[i] == nil {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		dv.Set(reflect.ValueOf(values[i]).Convert(dv.Type()))
	}
	return nil
}

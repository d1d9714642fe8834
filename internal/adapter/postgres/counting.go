package postgres

import (
	"context"
	"sync/atomic"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/metrics"
)

// CountingDB counts every statement sent through it, including statements
// issued on transactions it began.
type CountingDB struct {
	DB
	n       atomic.Int64
	metrics *metrics.Metrics
}

type countingTx struct {
	Tx
	parent *CountingDB
}

func NewCountingDB(db DB, m *metrics.Metrics) *CountingDB {
	return &CountingDB{DB: db, metrics: m}
}

// Count returns the number of statements seen since the last Reset.
func (c *CountingDB) Count() int64 {
	return c.n.Load()
}

func (c *CountingDB) Reset() {
	c.n.Store(0)
}

func (c *CountingDB) observe(kind string) {
	c.n.Add(1)
	c.metrics.ObserveQuery("postgres", kind)
}

func (c *CountingDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	c.observe("query")
	return c.DB.Query(ctx, sql, args...)
}

func (c *CountingDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	c.observe("query")
	return c.DB.QueryRow(ctx, sql, args...)
}

func (c *CountingDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	c.observe("exec")
	return c.DB.Exec(ctx, sql, args...)
}

func (c *CountingDB) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &countingTx{Tx: tx, parent: c}, nil
}

func (t *countingTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	t.parent.observe("query")
	return t.Tx.Query(ctx, sql, args...)
}

func (t *countingTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	t.parent.observe("query")
	return t.Tx.QueryRow(ctx, sql, args...)
}

func (t *countingTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	t.parent.observe("exec")
	return t.Tx.Exec(ctx, sql, args...)
}

package postgres

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
	"github.com/YelzhanWeb/ordersystem/internal/session"
)

// Session is one pgx transaction used as the data-access scope of a request.
type Session struct {
	tx   Tx
	open atomic.Bool
}

func (s *Session) Open() bool {
	return s.open.Load()
}

type transactor struct {
	db DB
}

func NewTransactor(db DB) interfaces.Transactor {
	return &transactor{db: db}
}

func (t *transactor) InSession(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if current := sessionFrom(ctx); current != nil {
		return fn(ctx)
	}

	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	s := &Session{tx: tx}
	s.open.Store(true)
	defer func() {
		s.open.Store(false)
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(session.With(ctx, s)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// sessionFrom returns the open postgres session in ctx, or nil.
func sessionFrom(ctx context.Context) *Session {
	s, ok := session.From(ctx)
	if !ok {
		return nil
	}
	ps, ok := s.(*Session)
	if !ok || !ps.Open() {
		return nil
	}
	return ps
}

// querier picks the session transaction when there is one.
func querier(ctx context.Context, db DB) Querier {
	if s := sessionFrom(ctx); s != nil {
		return s.tx
	}
	return db
}

// inTx runs fn on the session transaction, or on a short transaction of its
// own when ctx carries no session.
func inTx(ctx context.Context, db DB, fn func(q Querier) error) error {
	if s := sessionFrom(ctx); s != nil {
		return fn(s.tx)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func closed() bool { return false }

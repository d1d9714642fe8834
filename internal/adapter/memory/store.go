// Package memory is an in-process store implementing the same repository
// contracts as the postgres adapter. Every repository call and every lazy
// relation load counts as one query, so listing strategies cost the same
// number of round trips here as against a real database.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/metrics"
	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/session"
)

type orderRecord struct {
	ID         int64
	MemberID   int64
	DeliveryID int64
	OrderDate  time.Time
	Status     domain.OrderStatus
}

type orderItemRecord struct {
	ID         int64
	OrderID    int64
	ItemID     int64
	OrderPrice int
	Count      int
}

type Store struct {
	mu sync.RWMutex
	// writeMu is held by a session from its first locking read until it
	// ends. It stands in for row locks.
	writeMu    sync.Mutex
	members    map[int64]domain.Member
	items      map[int64]domain.Item
	deliveries map[int64]domain.Delivery
	orders     map[int64]orderRecord
	orderItems map[int64]orderItemRecord
	seq        map[string]int64

	queries atomic.Int64
	metrics *metrics.Metrics
}

func New(m *metrics.Metrics) *Store {
	return &Store{
		members:    make(map[int64]domain.Member),
		items:      make(map[int64]domain.Item),
		deliveries: make(map[int64]domain.Delivery),
		orders:     make(map[int64]orderRecord),
		orderItems: make(map[int64]orderItemRecord),
		seq:        make(map[string]int64),
		metrics:    m,
	}
}

// Count returns the number of queries served since the last Reset.
func (s *Store) Count() int64 {
	return s.queries.Load()
}

func (s *Store) Reset() {
	s.queries.Store(0)
}

func (s *Store) observe(kind string) {
	s.queries.Add(1)
	s.metrics.ObserveQuery("memory", kind)
}

// next returns the next identity for table. Callers hold s.mu.
func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func sortedKeys[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}

// Session is the memory store's data-access scope. Writes are applied
// immediately; there is nothing to roll back.
type Session struct {
	open   atomic.Bool
	unlock func()
}

func (s *Session) Open() bool {
	return s.open.Load()
}

// InSession runs fn with a memory session in ctx and closes it on return.
func (s *Store) InSession(ctx context.Context, fn func(ctx context.Context) error) error {
	if current := sessionFrom(ctx); current != nil {
		return fn(ctx)
	}

	sess := &Session{}
	sess.open.Store(true)
	defer func() {
		sess.open.Store(false)
		if sess.unlock != nil {
			sess.unlock()
		}
	}()

	return fn(session.With(ctx, sess))
}

// lockForUpdate makes the session in ctx hold writeMu until it ends. Outside
// a session there is nothing to hold the lock for.
func (s *Store) lockForUpdate(ctx context.Context) {
	sess := sessionFrom(ctx)
	if sess == nil || sess.unlock != nil {
		return
	}
	s.writeMu.Lock()
	sess.unlock = s.writeMu.Unlock
}

func sessionFrom(ctx context.Context) *Session {
	s, ok := session.From(ctx)
	if !ok {
		return nil
	}
	ms, ok := s.(*Session)
	if !ok || !ms.Open() {
		return nil
	}
	return ms
}

// openFunc reports whether lazy refs created under ctx may still load.
func openFunc(ctx context.Context) func() bool {
	if s := sessionFrom(ctx); s != nil {
		return s.Open
	}
	return func() bool { return false }
}

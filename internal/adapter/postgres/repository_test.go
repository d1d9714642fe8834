package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/session"
)

var orderDate = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// newOrderFixture serves n orders; order i belongs to member i, ships to
// "street i" and has two order items.
func newOrderFixture(n int) *fakeDB {
	f := newFakeDB()
	inRange := func(id int64) bool { return id >= 1 && id <= int64(n) }

	f.onQuery("JOIN member m", func(args []any) [][]any {
		var rows [][]any
		for i := 1; i <= n; i++ {
			rows = append(rows, []any{int64(i), fmt.Sprintf("member-%d", i), orderDate, "ORDER", fmt.Sprintf("street %d", i)})
		}
		return rows
	})
	f.onQuery("FROM orders ORDER BY order_id", func(args []any) [][]any {
		var rows [][]any
		for i := 1; i <= n; i++ {
			rows = append(rows, []any{int64(i), int64(i), int64(100 + i), orderDate, "ORDER"})
		}
		return rows
	})
	f.onQuery("FROM orders WHERE order_id = $1", func(args []any) [][]any {
		id := args[0].(int64)
		if !inRange(id) {
			return nil
		}
		return [][]any{{id, id, 100 + id, orderDate, "ORDER"}}
	})
	f.onQuery("FROM member WHERE member_id = $1", func(args []any) [][]any {
		id := args[0].(int64)
		return [][]any{{id, fmt.Sprintf("member-%d", id)}}
	})
	f.onQuery("FROM delivery WHERE delivery_id = $1", func(args []any) [][]any {
		id := args[0].(int64)
		return [][]any{{id, fmt.Sprintf("street %d", id-100), "READY"}}
	})
	f.onQuery("FROM order_item WHERE order_id = $1", func(args []any) [][]any {
		id := args[0].(int64)
		return [][]any{
			{id * 10, id, int64(1), 1000, 2},
			{id*10 + 1, id, int64(2), 500, 1},
		}
	})
	f.onQuery("FROM item WHERE item_id = $1", func(args []any) [][]any {
		id := args[0].(int64)
		return [][]any{{id, fmt.Sprintf("item-%d", id), 1000, 5}}
	})
	return f
}

func TestFindOrderSummariesIssuesOneQuery(t *testing.T) {
	for _, n := range []int{0, 1, 25} {
		t.Run(fmt.Sprintf("%d orders", n), func(t *testing.T) {
			db := NewCountingDB(newOrderFixture(n), nil)
			repo := NewOrderQueryRepository(db)

			summaries, err := repo.FindOrderSummaries(context.Background())
			require.NoError(t, err)
			require.NotNil(t, summaries)
			require.Len(t, summaries, n)
			assert.EqualValues(t, 1, db.Count())

			for i, s := range summaries {
				assert.Equal(t, int64(i+1), s.ID, "rows keep query order")
				assert.Equal(t, fmt.Sprintf("member-%d", i+1), s.OwnerName)
				assert.Equal(t, fmt.Sprintf("street %d", i+1), s.DeliveryAddress)
				assert.Equal(t, domain.OrderStatusOrder, s.OrderStatus)
				assert.Equal(t, orderDate, s.OrderDate)
			}
		})
	}
}

func TestFindAllResolvesInsideSession(t *testing.T) {
	const n = 4
	fake := newOrderFixture(n)
	db := NewCountingDB(fake, nil)
	repo := NewOrderRepository(db)
	tr := NewTransactor(db)
	ctx := context.Background()

	var orders []*domain.Order
	err := tr.InSession(ctx, func(ctx context.Context) error {
		var err error
		orders, err = repo.FindAll(ctx)
		if err != nil {
			return err
		}
		assert.EqualValues(t, 1, db.Count(), "listing alone is one query")

		for _, o := range orders {
			if _, err := o.Member.Resolve(ctx); err != nil {
				return err
			}
			if _, err := o.Delivery.Resolve(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, orders, n)

	assert.EqualValues(t, 1+2*n, db.Count(), "one extra query per touched relation")
	assert.Equal(t, 1, fake.committed)

	m, err := orders[2].Member.Get()
	require.NoError(t, err)
	assert.Equal(t, "member-3", m.Name)

	d, err := orders[2].Delivery.Get()
	require.NoError(t, err)
	assert.Equal(t, "street 3", d.Address)

	_, err = orders[0].OrderItems.Get()
	assert.ErrorIs(t, err, domain.ErrLazyAccess)
	_, err = orders[0].OrderItems.Resolve(ctx)
	assert.ErrorIs(t, err, domain.ErrLazyAccess, "untouched relation cannot load after the session closed")
}

func TestFullGraphQueryCount(t *testing.T) {
	const n = 3
	db := NewCountingDB(newOrderFixture(n), nil)
	repo := NewOrderRepository(db)
	tr := NewTransactor(db)

	err := tr.InSession(context.Background(), func(ctx context.Context) error {
		orders, err := repo.FindAll(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			o.Member.Resolve(ctx)
			o.Delivery.Resolve(ctx)
			items, err := o.OrderItems.Resolve(ctx)
			if err != nil {
				return err
			}
			for _, oi := range items {
				item, err := oi.Item.Resolve(ctx)
				if err != nil {
					return err
				}
				assert.Equal(t, fmt.Sprintf("item-%d", item.ID), item.Name)
			}
		}
		return nil
	})
	require.NoError(t, err)

	// orders + per order (member, delivery, order items, two items)
	assert.EqualValues(t, 1+n*5, db.Count())
}

func TestFindAllOutsideSession(t *testing.T) {
	repo := NewOrderRepository(newOrderFixture(2))

	orders, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	_, err = orders[0].Member.Resolve(context.Background())
	assert.ErrorIs(t, err, domain.ErrLazyAccess)
}

func TestFindOneNotFound(t *testing.T) {
	repo := NewOrderRepository(newOrderFixture(2))

	_, err := repo.FindOne(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	order, err := repo.FindOne(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), order.ID)
	assert.Equal(t, int64(2), order.Member.ID)
	assert.Equal(t, int64(102), order.Delivery.ID)
}

func TestTransactorRollsBackOnError(t *testing.T) {
	fake := newFakeDB()
	tr := NewTransactor(fake)
	boom := errors.New("boom")

	var scope session.Scope
	err := tr.InSession(context.Background(), func(ctx context.Context) error {
		scope, _ = session.From(ctx)
		assert.True(t, scope.Open())
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, fake.rolledBack)
	assert.Equal(t, 0, fake.committed)
	assert.False(t, scope.Open(), "scope is closed on every exit path")
}

func TestTransactorRollsBackOnPanic(t *testing.T) {
	fake := newFakeDB()
	tr := NewTransactor(fake)

	assert.Panics(t, func() {
		_ = tr.InSession(context.Background(), func(ctx context.Context) error {
			panic("handler bug")
		})
	})
	assert.Equal(t, 1, fake.rolledBack)
}

func TestTransactorJoinsOuterSession(t *testing.T) {
	fake := newFakeDB()
	tr := NewTransactor(fake)

	err := tr.InSession(context.Background(), func(ctx context.Context) error {
		return tr.InSession(ctx, func(ctx context.Context) error { return nil })
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.begun)
	assert.Equal(t, 1, fake.committed)
}

func TestMemberRepository(t *testing.T) {
	fake := newOrderFixture(0)
	fake.onQuery("INSERT INTO member", func(args []any) [][]any {
		return [][]any{{int64(1)}}
	})
	fake.onQuery("FROM member ORDER BY member_id", func(args []any) [][]any {
		return [][]any{{int64(1), "Alice"}, {int64(2), "Bob"}}
	})
	fake.onExec("UPDATE member", 0)
	repo := NewMemberRepository(fake)
	ctx := context.Background()

	m := &domain.Member{Name: "Alice"}
	require.NoError(t, repo.Save(ctx, m))
	assert.Equal(t, int64(1), m.ID)

	members, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Bob", members[1].Name)

	err = repo.Update(ctx, &domain.Member{ID: 42, Name: "Carol"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderSaveAssignsIdentities(t *testing.T) {
	fake := newFakeDB()
	fake.onQuery("INSERT INTO delivery", func(args []any) [][]any {
		assert.Equal(t, "123 Main St", args[0])
		return [][]any{{int64(7)}}
	})
	fake.onQuery("INSERT INTO orders", func(args []any) [][]any {
		assert.Equal(t, int64(1), args[0])
		assert.Equal(t, int64(7), args[1])
		return [][]any{{int64(3)}}
	})
	fake.onQuery("INSERT INTO order_item", func(args []any) [][]any {
		assert.Equal(t, int64(2), args[1])
		return [][]any{{int64(11)}}
	})
	repo := NewOrderRepository(fake)

	item := &domain.Item{ID: 2, Name: "Book", Price: 100, StockQuantity: 5}
	oi, err := domain.NewOrderItem(item, item.Price, 2)
	require.NoError(t, err)
	delivery, err := domain.NewDelivery("123 Main St")
	require.NoError(t, err)
	order, err := domain.NewOrder(&domain.Member{ID: 1, Name: "Alice"}, delivery, oi)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), order))

	assert.Equal(t, int64(3), order.ID)
	assert.Equal(t, int64(7), delivery.ID)
	assert.Equal(t, int64(7), order.Delivery.ID)
	assert.Equal(t, int64(11), oi.ID)
	assert.Equal(t, int64(3), oi.OrderID)
	assert.Equal(t, 1, fake.begun)
	assert.Equal(t, 1, fake.committed)
}

func TestFindOneForUpdateLocksRows(t *testing.T) {
	fake := newOrderFixture(1)
	tr := NewTransactor(fake)
	orders := NewOrderRepository(fake)
	items := NewItemRepository(fake)

	err := tr.InSession(context.Background(), func(ctx context.Context) error {
		order, err := orders.FindOneForUpdate(ctx, 1)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(1), order.Member.ID)

		item, err := items.FindOneForUpdate(ctx, 2)
		if err != nil {
			return err
		}
		assert.Equal(t, "item-2", item.Name)
		assert.Equal(t, 5, item.StockQuantity)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.committed)

	require.Len(t, fake.statements, 2)
	for _, stmt := range fake.statements {
		assert.True(t, strings.HasSuffix(stmt, "FOR UPDATE"), stmt)
	}

	_, err = orders.FindOneForUpdate(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package domain

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, stock, count int) (*Order, *Item) {
	t.Helper()
	member, err := NewMember("Alice")
	require.NoError(t, err)
	item, err := NewItem("Book", 10000, stock)
	require.NoError(t, err)
	delivery, err := NewDelivery("123 Main St")
	require.NoError(t, err)
	oi, err := NewOrderItem(item, item.Price, count)
	require.NoError(t, err)
	order, err := NewOrder(member, delivery, oi)
	require.NoError(t, err)
	return order, item
}

func TestNewOrder(t *testing.T) {
	order, item := newTestOrder(t, 10, 2)

	assert.Equal(t, OrderStatusOrder, order.Status)
	assert.Equal(t, 8, item.StockQuantity)

	d, err := order.Delivery.Get()
	require.NoError(t, err)
	assert.Equal(t, DeliveryStatusReady, d.Status)

	total, err := order.TotalPrice()
	require.NoError(t, err)
	assert.Equal(t, 20000, total)
}

func TestNewOrderValidation(t *testing.T) {
	member := &Member{ID: 1, Name: "Alice"}
	delivery := &Delivery{Address: "x"}

	_, err := NewOrder(member, delivery)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewOrder(nil, delivery, &OrderItem{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewOrderItem(&Item{StockQuantity: 5}, 100, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewOrderItemNotEnoughStock(t *testing.T) {
	item := &Item{ID: 1, Name: "Book", Price: 100, StockQuantity: 1}
	_, err := NewOrderItem(item, item.Price, 2)
	assert.ErrorIs(t, err, ErrNotEnoughStock)
	assert.Equal(t, 1, item.StockQuantity)
}

func TestCancelRestoresStock(t *testing.T) {
	order, item := newTestOrder(t, 10, 3)

	require.NoError(t, order.Cancel())
	assert.Equal(t, OrderStatusCancel, order.Status)
	assert.Equal(t, 10, item.StockQuantity)
}

func TestCancelCompletedDelivery(t *testing.T) {
	order, item := newTestOrder(t, 10, 3)
	d, err := order.Delivery.Get()
	require.NoError(t, err)
	d.Status = DeliveryStatusComplete

	assert.ErrorIs(t, order.Cancel(), ErrAlreadyDelivered)
	assert.Equal(t, OrderStatusOrder, order.Status)
	assert.Equal(t, 7, item.StockQuantity)
}

func TestCancelNeedsResolvedRelations(t *testing.T) {
	closed := func() bool { return false }
	order := &Order{
		ID:     9,
		Status: OrderStatusOrder,
		Delivery: Deferred(1, closed, func(ctx context.Context) (*Delivery, error) {
			return &Delivery{}, nil
		}),
	}
	assert.ErrorIs(t, order.Cancel(), ErrLazyAccess)
}

func TestMemberRename(t *testing.T) {
	m, err := NewMember("  Bob  ")
	require.NoError(t, err)
	assert.Equal(t, "Bob", m.Name)

	assert.ErrorIs(t, m.Rename("   "), ErrValidation)
	assert.Equal(t, "Bob", m.Name)
}

func TestCancelTwice(t *testing.T) {
	order, item := newTestOrder(t, 5, 2)

	require.NoError(t, order.Cancel())
	require.Equal(t, 5, item.StockQuantity)

	assert.ErrorIs(t, order.Cancel(), ErrAlreadyCancelled)
	assert.Equal(t, OrderStatusCancel, order.Status)
	assert.Equal(t, 5, item.StockQuantity, "stock is restored once")
}

func TestNamesCountCharacters(t *testing.T) {
	cyrillic := strings.Repeat("ж", 40)
	m, err := NewMember(cyrillic)
	require.NoError(t, err)
	assert.Equal(t, cyrillic, m.Name)

	_, err = NewItem(strings.Repeat("本", 100), 1, 1)
	assert.NoError(t, err)

	_, err = NewMember(strings.Repeat("ж", 101))
	assert.ErrorIs(t, err, ErrValidation)
}

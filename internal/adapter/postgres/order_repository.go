package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

// Save inserts the delivery, the order and its order items in one transaction.
func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	member, err := order.Member.Get()
	if err != nil {
		return err
	}
	delivery, err := order.Delivery.Get()
	if err != nil {
		return err
	}
	items, err := order.OrderItems.Get()
	if err != nil {
		return err
	}

	return inTx(ctx, r.db, func(q Querier) error {
		deliveryQuery := `INSERT INTO delivery (address, status) VALUES ($1, $2) RETURNING delivery_id`
		if err := q.QueryRow(ctx, deliveryQuery, delivery.Address, delivery.Status).Scan(&delivery.ID); err != nil {
			return fmt.Errorf("failed to insert delivery: %w", err)
		}
		order.Delivery.ID = delivery.ID

		orderQuery := `
			INSERT INTO orders (member_id, delivery_id, order_date, status)
			VALUES ($1, $2, $3, $4)
			RETURNING order_id
		`
		err := q.QueryRow(ctx, orderQuery, member.ID, delivery.ID, order.OrderDate, order.Status).Scan(&order.ID)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		order.OrderItems.ID = order.ID

		itemQuery := `
			INSERT INTO order_item (order_id, item_id, order_price, count)
			VALUES ($1, $2, $3, $4)
			RETURNING order_item_id
		`
		for _, oi := range items {
			oi.OrderID = order.ID
			if err := q.QueryRow(ctx, itemQuery, order.ID, oi.Item.ID, oi.OrderPrice, oi.Count).Scan(&oi.ID); err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}
		return nil
	})
}

func (r *orderRepository) UpdateStatus(ctx context.Context, order *domain.Order) error {
	query := `UPDATE orders SET status = $1 WHERE order_id = $2`
	tag, err := querier(ctx, r.db).Exec(ctx, query, order.Status, order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", order.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *orderRepository) FindOne(ctx context.Context, id int64) (*domain.Order, error) {
	return r.findOne(ctx, id, "")
}

// FindOneForUpdate locks the order row until the session transaction ends.
func (r *orderRepository) FindOneForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return r.findOne(ctx, id, "FOR UPDATE")
}

func (r *orderRepository) findOne(ctx context.Context, id int64, lock string) (*domain.Order, error) {
	query := `
		SELECT order_id, member_id, delivery_id, order_date, status
		FROM orders
		WHERE order_id = $1
	` + lock

	var (
		order                domain.Order
		memberID, deliveryID int64
	)
	err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&order.ID, &memberID, &deliveryID, &order.OrderDate, &order.Status,
	)
	if err != nil {
		return nil, notFound(err, "order", id)
	}

	r.bind(ctx, &order, memberID, deliveryID)
	return &order, nil
}

// FindAll issues one query for the orders. Every relation stays deferred and
// costs one more query when resolved.
func (r *orderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT order_id, member_id, delivery_id, order_date, status
		FROM orders
		ORDER BY order_id
	`

	rows, err := querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var (
			order                domain.Order
			memberID, deliveryID int64
		)
		if err := rows.Scan(&order.ID, &memberID, &deliveryID, &order.OrderDate, &order.Status); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		r.bind(ctx, &order, memberID, deliveryID)
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// bind attaches deferred relations that load through the session in ctx.
// Without a session every relation fails with domain.ErrLazyAccess.
func (r *orderRepository) bind(ctx context.Context, order *domain.Order, memberID, deliveryID int64) {
	open := closed
	var q Querier
	if s := sessionFrom(ctx); s != nil {
		open = s.Open
		q = s.tx
	}

	orderID := order.ID
	order.Member = domain.Deferred(memberID, open, func(ctx context.Context) (*domain.Member, error) {
		return findMember(ctx, q, memberID)
	})
	order.Delivery = domain.Deferred(deliveryID, open, func(ctx context.Context) (*domain.Delivery, error) {
		return findDelivery(ctx, q, deliveryID)
	})
	order.OrderItems = domain.Deferred(orderID, open, func(ctx context.Context) ([]*domain.OrderItem, error) {
		return findOrderItems(ctx, q, open, orderID)
	})
}

func findDelivery(ctx context.Context, q Querier, id int64) (*domain.Delivery, error) {
	query := `SELECT delivery_id, address, status FROM delivery WHERE delivery_id = $1`

	var d domain.Delivery
	if err := q.QueryRow(ctx, query, id).Scan(&d.ID, &d.Address, &d.Status); err != nil {
		return nil, notFound(err, "delivery", id)
	}
	return &d, nil
}

func findOrderItems(ctx context.Context, q Querier, open func() bool, orderID int64) ([]*domain.OrderItem, error) {
	query := `
		SELECT order_item_id, order_id, item_id, order_price, count
		FROM order_item
		WHERE order_id = $1
		ORDER BY order_item_id
	`

	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	var items []*domain.OrderItem
	for rows.Next() {
		var (
			oi     domain.OrderItem
			itemID int64
		)
		if err := rows.Scan(&oi.ID, &oi.OrderID, &itemID, &oi.OrderPrice, &oi.Count); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		oi.Item = domain.Deferred(itemID, open, func(ctx context.Context) (*domain.Item, error) {
			return findItem(ctx, q, itemID)
		})
		items = append(items, &oi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	return items, nil
}

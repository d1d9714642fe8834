package memory

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

type orderRepository struct{ s *Store }

func NewOrderRepository(s *Store) interfaces.OrderRepository {
	return &orderRepository{s: s}
}

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

	r.s.observe("exec")
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.members[member.ID]; !ok {
		return fmt.Errorf("member %d: %w", member.ID, domain.ErrNotFound)
	}
	for _, oi := range items {
		if _, ok := r.s.items[oi.Item.ID]; !ok {
			return fmt.Errorf("item %d: %w", oi.Item.ID, domain.ErrNotFound)
		}
	}

	delivery.ID = r.s.next("delivery")
	r.s.deliveries[delivery.ID] = *delivery
	order.Delivery.ID = delivery.ID

	order.ID = r.s.next("orders")
	order.OrderItems.ID = order.ID
	r.s.orders[order.ID] = orderRecord{
		ID:         order.ID,
		MemberID:   member.ID,
		DeliveryID: delivery.ID,
		OrderDate:  order.OrderDate,
		Status:     order.Status,
	}

	for _, oi := range items {
		oi.ID = r.s.next("order_item")
		oi.OrderID = order.ID
		r.s.orderItems[oi.ID] = orderItemRecord{
			ID:         oi.ID,
			OrderID:    order.ID,
			ItemID:     oi.Item.ID,
			OrderPrice: oi.OrderPrice,
			Count:      oi.Count,
		}
	}
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, order *domain.Order) error {
	r.s.observe("exec")
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.orders[order.ID]
	if !ok {
		return fmt.Errorf("order %d: %w", order.ID, domain.ErrNotFound)
	}
	rec.Status = order.Status
	r.s.orders[order.ID] = rec
	return nil
}

func (r *orderRepository) FindOne(ctx context.Context, id int64) (*domain.Order, error) {
	r.s.observe("query")
	r.s.mu.RLock()
	rec, ok := r.s.orders[id]
	r.s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return r.bind(ctx, rec), nil
}

func (r *orderRepository) FindOneForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	r.s.lockForUpdate(ctx)
	return r.FindOne(ctx, id)
}

func (r *orderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	r.s.observe("query")
	r.s.mu.RLock()
	recs := make([]orderRecord, 0, len(r.s.orders))
	for _, id := range sortedKeys(r.s.orders) {
		recs = append(recs, r.s.orders[id])
	}
	r.s.mu.RUnlock()

	orders := make([]*domain.Order, 0, len(recs))
	for _, rec := range recs {
		orders = append(orders, r.bind(ctx, rec))
	}
	return orders, nil
}

func (r *orderRepository) bind(ctx context.Context, rec orderRecord) *domain.Order {
	open := openFunc(ctx)
	s := r.s
	return &domain.Order{
		ID:        rec.ID,
		OrderDate: rec.OrderDate,
		Status:    rec.Status,
		Member: domain.Deferred(rec.MemberID, open, func(ctx context.Context) (*domain.Member, error) {
			return s.member(rec.MemberID)
		}),
		Delivery: domain.Deferred(rec.DeliveryID, open, func(ctx context.Context) (*domain.Delivery, error) {
			return s.delivery(rec.DeliveryID)
		}),
		OrderItems: domain.Deferred(rec.ID, open, func(ctx context.Context) ([]*domain.OrderItem, error) {
			return s.orderItemsOf(rec.ID, open), nil
		}),
	}
}

func (s *Store) orderItemsOf(orderID int64, open func() bool) []*domain.OrderItem {
	s.observe("query")
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []*domain.OrderItem
	for _, id := range sortedKeys(s.orderItems) {
		rec := s.orderItems[id]
		if rec.OrderID != orderID {
			continue
		}
		items = append(items, &domain.OrderItem{
			ID:         rec.ID,
			OrderID:    rec.OrderID,
			OrderPrice: rec.OrderPrice,
			Count:      rec.Count,
			Item: domain.Deferred(rec.ItemID, open, func(ctx context.Context) (*domain.Item, error) {
				return s.item(rec.ItemID)
			}),
		})
	}
	return items
}

type orderQueryRepository struct{ s *Store }

func NewOrderQueryRepository(s *Store) interfaces.OrderQueryRepository {
	return &orderQueryRepository{s: s}
}

// FindOrderSummaries joins orders with members and deliveries in one pass.
// Orders whose member or delivery is missing are skipped.
func (r *orderQueryRepository) FindOrderSummaries(ctx context.Context) ([]domain.OrderSummary, error) {
	r.s.observe("query")
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	summaries := make([]domain.OrderSummary, 0, len(r.s.orders))
	for _, id := range sortedKeys(r.s.orders) {
		rec := r.s.orders[id]
		m, ok := r.s.members[rec.MemberID]
		if !ok {
			continue
		}
		d, ok := r.s.deliveries[rec.DeliveryID]
		if !ok {
			continue
		}
		summaries = append(summaries, domain.OrderSummary{
			ID:              rec.ID,
			OwnerName:       m.Name,
			OrderDate:       rec.OrderDate,
			OrderStatus:     rec.Status,
			DeliveryAddress: d.Address,
		})
	}
	return summaries, nil
}

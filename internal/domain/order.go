package domain

import (
	"fmt"
	"time"
)

// Order is a purchase placed by a member. Member, Delivery and OrderItems
// are references that must be resolved before they are read.
type Order struct {
	ID         int64
	Member     Ref[*Member]
	Delivery   Ref[*Delivery]
	OrderItems Ref[[]*OrderItem]
	OrderDate  time.Time
	Status     OrderStatus
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID         int64
	OrderID    int64
	Item       Ref[*Item]
	OrderPrice int
	Count      int
}

// NewOrderItem creates an order line and takes count units out of the item's stock.
func NewOrderItem(item *Item, orderPrice, count int) (*OrderItem, error) {
	if count < 1 {
		return nil, fmt.Errorf("order count must be at least 1: %w", ErrValidation)
	}
	if err := item.RemoveStock(count); err != nil {
		return nil, err
	}
	return &OrderItem{
		Item:       Resolved(item.ID, item),
		OrderPrice: orderPrice,
		Count:      count,
	}, nil
}

// NewOrder creates an order with status ORDER and a READY delivery.
func NewOrder(member *Member, delivery *Delivery, items ...*OrderItem) (*Order, error) {
	if member == nil {
		return nil, fmt.Errorf("order requires a member: %w", ErrValidation)
	}
	if delivery == nil {
		return nil, fmt.Errorf("order requires a delivery: %w", ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order requires at least one item: %w", ErrValidation)
	}

	delivery.Status = DeliveryStatusReady
	return &Order{
		Member:     Resolved(member.ID, member),
		Delivery:   Resolved(delivery.ID, delivery),
		OrderItems: Resolved(0, items),
		OrderDate:  time.Now().UTC(),
		Status:     OrderStatusOrder,
	}, nil
}

// Cancel marks the order cancelled and puts every item back in stock.
// Delivery, order items and their items must already be resolved.
// A cancelled order cannot be cancelled again.
func (o *Order) Cancel() error {
	if o.Status == OrderStatusCancel {
		return fmt.Errorf("cancel order %d: %w", o.ID, ErrAlreadyCancelled)
	}

	delivery, err := o.Delivery.Get()
	if err != nil {
		return err
	}
	if delivery.Status == DeliveryStatusComplete {
		return fmt.Errorf("cancel order %d: %w", o.ID, ErrAlreadyDelivered)
	}

	items, err := o.OrderItems.Get()
	if err != nil {
		return err
	}
	for _, oi := range items {
		item, err := oi.Item.Get()
		if err != nil {
			return err
		}
		item.AddStock(oi.Count)
	}

	o.Status = OrderStatusCancel
	return nil
}

// TotalPrice sums price times count over the resolved order items.
func (o *Order) TotalPrice() (int, error) {
	items, err := o.OrderItems.Get()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, oi := range items {
		total += oi.OrderPrice * oi.Count
	}
	return total, nil
}

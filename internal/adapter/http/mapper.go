package http

import (
	"time"

	"github.com/YelzhanWeb/ordersystem/internal/domain"
)

type MemberView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DeliveryView struct {
	ID      int64                 `json:"id"`
	Address string                `json:"address"`
	Status  domain.DeliveryStatus `json:"status"`
}

type OrderItemView struct {
	ID         int64        `json:"id"`
	Item       ItemResponse `json:"item"`
	OrderPrice int          `json:"orderPrice"`
	Count      int          `json:"count"`
}

// OrderView is the entity-shaped order response. OrderItems is left out
// for listings that only load member and delivery.
type OrderView struct {
	ID         int64              `json:"id"`
	Member     MemberView         `json:"member"`
	OrderDate  time.Time          `json:"orderDate"`
	Status     domain.OrderStatus `json:"status"`
	Delivery   DeliveryView       `json:"delivery"`
	OrderItems []OrderItemView    `json:"orderItems,omitempty"`
	TotalPrice *int               `json:"totalPrice,omitempty"`
}

type OrderSummaryView struct {
	ID              int64              `json:"id"`
	OwnerName       string             `json:"ownerName"`
	OrderDate       time.Time          `json:"orderDate"`
	OrderStatus     domain.OrderStatus `json:"orderStatus"`
	DeliveryAddress string             `json:"deliveryAddress"`
}

type OrderStatusResponse struct {
	ID     int64              `json:"id"`
	Status domain.OrderStatus `json:"status"`
}

// toOrderHeader maps an order with member and delivery resolved.
func toOrderHeader(o *domain.Order) (OrderView, error) {
	member, err := o.Member.Get()
	if err != nil {
		return OrderView{}, err
	}
	delivery, err := o.Delivery.Get()
	if err != nil {
		return OrderView{}, err
	}
	return OrderView{
		ID:        o.ID,
		Member:    MemberView{ID: member.ID, Name: member.Name},
		OrderDate: o.OrderDate,
		Status:    o.Status,
		Delivery: DeliveryView{
			ID:      delivery.ID,
			Address: delivery.Address,
			Status:  delivery.Status,
		},
	}, nil
}

// toOrderView maps an order whose whole graph is resolved.
func toOrderView(o *domain.Order) (OrderView, error) {
	view, err := toOrderHeader(o)
	if err != nil {
		return OrderView{}, err
	}

	lines, err := o.OrderItems.Get()
	if err != nil {
		return OrderView{}, err
	}
	view.OrderItems = make([]OrderItemView, 0, len(lines))
	for _, line := range lines {
		item, err := line.Item.Get()
		if err != nil {
			return OrderView{}, err
		}
		view.OrderItems = append(view.OrderItems, OrderItemView{
			ID: line.ID,
			Item: ItemResponse{
				ID:            item.ID,
				Name:          item.Name,
				Price:         item.Price,
				StockQuantity: item.StockQuantity,
			},
			OrderPrice: line.OrderPrice,
			Count:      line.Count,
		})
	}

	total, err := o.TotalPrice()
	if err != nil {
		return OrderView{}, err
	}
	view.TotalPrice = &total
	return view, nil
}

func toSummaryViews(summaries []domain.OrderSummary) []OrderSummaryView {
	views := make([]OrderSummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, OrderSummaryView{
			ID:              s.ID,
			OwnerName:       s.OwnerName,
			OrderDate:       s.OrderDate,
			OrderStatus:     s.OrderStatus,
			DeliveryAddress: s.DeliveryAddress,
		})
	}
	return views
}

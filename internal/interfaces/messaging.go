package interfaces

//go:generate mockgen -source=messaging.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/YelzhanWeb/ordersystem/internal/domain"
)

// Routing keys on the orders topic exchange.
const (
	RoutingMemberJoined   = "member.joined"
	RoutingOrderPlaced    = "order.placed"
	RoutingOrderCancelled = "order.cancelled"
)

// RabbitMQ messages
type MemberJoinedMessage struct {
	MemberID  int64     `json:"member_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

type OrderStatusMessage struct {
	OrderID    int64              `json:"order_id"`
	MemberID   int64              `json:"member_id"`
	Status     domain.OrderStatus `json:"status"`
	TotalPrice int                `json:"total_price"`
	Timestamp  time.Time          `json:"timestamp"`
}

// MessagePublisher emits domain events after their session has committed.
type MessagePublisher interface {
	PublishMemberJoined(ctx context.Context, msg MemberJoinedMessage) error
	PublishOrderStatus(ctx context.Context, msg OrderStatusMessage) error
}

type MessageConsumer interface {
	ConsumeEvents(ctx context.Context, handler EventHandler) error
}

type EventHandler func(ctx context.Context, routingKey string, body []byte) error

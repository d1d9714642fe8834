package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

type publisher struct {
	conn Connection
}

func NewPublisher(conn Connection) interfaces.MessagePublisher {
	return &publisher{conn: conn}
}

func (p *publisher) PublishMemberJoined(ctx context.Context, msg interfaces.MemberJoinedMessage) error {
	return p.publish(ctx, interfaces.RoutingMemberJoined, msg)
}

func (p *publisher) PublishOrderStatus(ctx context.Context, msg interfaces.OrderStatusMessage) error {
	key, err := orderRoutingKey(msg.Status)
	if err != nil {
		return err
	}
	return p.publish(ctx, key, msg)
}

func orderRoutingKey(status domain.OrderStatus) (string, error) {
	switch status {
	case domain.OrderStatusOrder:
		return interfaces.RoutingOrderPlaced, nil
	case domain.OrderStatusCancel:
		return interfaces.RoutingOrderCancelled, nil
	}
	return "", fmt.Errorf("no routing key for order status %q", status)
}

func (p *publisher) publish(ctx context.Context, routingKey string, msg interface{}) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := declareExchange(ch); err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.PublishWithContext(ctx, EventsExchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}
	return nil
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishMemberJoined(context.Context, interfaces.MemberJoinedMessage) error {
	return nil
}

func (NoopPublisher) PublishOrderStatus(context.Context, interfaces.OrderStatusMessage) error {
	return nil
}

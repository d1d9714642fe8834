package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/logger"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

// NotificationHandler logs every order event the subscriber receives.
type NotificationHandler struct {
	logger logger.Logger
}

func NewNotificationHandler(log logger.Logger) *NotificationHandler {
	return &NotificationHandler{logger: log}
}

func (h *NotificationHandler) HandleEvent(ctx context.Context, routingKey string, body []byte) error {
	switch routingKey {
	case interfaces.RoutingMemberJoined:
		var msg interfaces.MemberJoinedMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			h.logger.Error("message_parse_failed", "Failed to parse member event", "", nil, err)
			return err
		}
		h.logger.Info("notification_received", fmt.Sprintf("Member %d joined as %s", msg.MemberID, msg.Name), "", map[string]interface{}{
			"routing_key": routingKey,
			"member_id":   msg.MemberID,
		})

	case interfaces.RoutingOrderPlaced, interfaces.RoutingOrderCancelled:
		var msg interfaces.OrderStatusMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			h.logger.Error("message_parse_failed", "Failed to parse order event", "", nil, err)
			return err
		}
		h.logger.Info("notification_received", fmt.Sprintf("Order %d is now %s", msg.OrderID, msg.Status), "", map[string]interface{}{
			"routing_key": routingKey,
			"order_id":    msg.OrderID,
			"member_id":   msg.MemberID,
			"total_price": msg.TotalPrice,
		})

	default:
		h.logger.Debug("notification_ignored", "Unknown routing key", "", map[string]interface{}{"routing_key": routingKey})
	}
	return nil
}

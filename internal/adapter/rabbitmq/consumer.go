package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/logger"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

const defaultRetryDelay = 5 * time.Second

type consumer struct {
	conn       Connection
	logger     logger.Logger
	retryDelay time.Duration
}

func NewConsumer(conn Connection, log logger.Logger) interfaces.MessageConsumer {
	return &consumer{conn: conn, logger: log, retryDelay: defaultRetryDelay}
}

// ConsumeEvents delivers every event on the exchange to handler until ctx
// is cancelled, resubscribing after a lost channel.
func (c *consumer) ConsumeEvents(ctx context.Context, handler interfaces.EventHandler) error {
	for {
		err := c.consume(ctx, handler)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		c.logger.Error("consumer_disconnected", fmt.Sprintf("Events consumer disconnected, reconnecting in %s", c.retryDelay), "", nil, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}
}

func (c *consumer) consume(ctx context.Context, handler interfaces.EventHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := declareExchange(ch); err != nil {
		return err
	}

	// temporary exclusive queue, gone with the subscriber
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "#", EventsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.logger.Info("consumer_started", "Listening for order events", "", map[string]interface{}{"queue": q.Name})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return errors.New("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return errors.New("messages channel closed")
			}
			// auto-acked; a bad event is logged and skipped
			if err := handler(ctx, msg.RoutingKey, msg.Body); err != nil {
				c.logger.Error("event_handle_failed", "Failed to handle event", "", map[string]interface{}{"routing_key": msg.RoutingKey}, err)
			}
		}
	}
}

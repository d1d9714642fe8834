package order

import (
	"context"
	"fmt"
	"time"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/logger"
	"github.com/YelzhanWeb/ordersystem/internal/adapter/metrics"
	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

// Repositories groups the stores the order service reads and writes.
type Repositories struct {
	Orders  interfaces.OrderRepository
	Queries interfaces.OrderQueryRepository
	Members interfaces.MemberRepository
	Items   interfaces.ItemRepository
}

type Service struct {
	tx        interfaces.Transactor
	repos     Repositories
	publisher interfaces.MessagePublisher
	metrics   *metrics.Metrics
	logger    logger.Logger
	strategy  interfaces.ListStrategy
}

func NewService(
	tx interfaces.Transactor,
	repos Repositories,
	publisher interfaces.MessagePublisher,
	m *metrics.Metrics,
	log logger.Logger,
	strategy interfaces.ListStrategy,
) *Service {
	if strategy == "" {
		strategy = interfaces.ListProjection
	}
	return &Service{
		tx:        tx,
		repos:     repos,
		publisher: publisher,
		metrics:   m,
		logger:    log,
		strategy:  strategy,
	}
}

func (s *Service) Strategy() interfaces.ListStrategy {
	return s.strategy
}

// Order places a single-item order for a member and takes the ordered
// count out of the item's stock.
func (s *Service) Order(ctx context.Context, cmd interfaces.PlaceOrderCommand) (int64, error) {
	requestID := logger.RequestID(ctx)

	var (
		order *domain.Order
		total int
	)
	err := s.tx.InSession(ctx, func(ctx context.Context) error {
		delivery, err := domain.NewDelivery(cmd.Address)
		if err != nil {
			return err
		}
		member, err := s.repos.Members.FindOne(ctx, cmd.MemberID)
		if err != nil {
			return err
		}
		item, err := s.repos.Items.FindOneForUpdate(ctx, cmd.ItemID)
		if err != nil {
			return err
		}

		line, err := domain.NewOrderItem(item, item.Price, cmd.Count)
		if err != nil {
			return err
		}
		order, err = domain.NewOrder(member, delivery, line)
		if err != nil {
			return err
		}
		if err := s.repos.Orders.Save(ctx, order); err != nil {
			return err
		}
		// Stock is written last so a failed insert never leaves it short.
		if err := s.repos.Items.Update(ctx, item); err != nil {
			return err
		}

		total, err = order.TotalPrice()
		return err
	})
	if err != nil {
		s.logger.Error("order_failed", "Failed to place order", requestID, map[string]interface{}{
			"member_id": cmd.MemberID,
			"item_id":   cmd.ItemID,
			"count":     cmd.Count,
		}, err)
		return 0, err
	}

	s.metrics.OrderPlaced()
	s.logger.Info("order_placed", "Order placed", requestID, map[string]interface{}{
		"order_id":    order.ID,
		"total_price": total,
	})
	s.publish(ctx, order, total)

	return order.ID, nil
}

// Cancel cancels an order and returns every ordered unit to stock.
func (s *Service) Cancel(ctx context.Context, orderID int64) (*domain.Order, error) {
	requestID := logger.RequestID(ctx)

	var (
		order *domain.Order
		total int
	)
	err := s.tx.InSession(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repos.Orders.FindOneForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := resolveHeader(ctx, order); err != nil {
			return err
		}
		lines, err := order.OrderItems.Resolve(ctx)
		if err != nil {
			return err
		}
		for _, line := range lines {
			item, err := s.repos.Items.FindOneForUpdate(ctx, line.Item.ID)
			if err != nil {
				return err
			}
			line.Item = domain.Resolved(item.ID, item)
		}

		if err := order.Cancel(); err != nil {
			return err
		}
		if err := s.repos.Orders.UpdateStatus(ctx, order); err != nil {
			return err
		}
		for _, line := range lines {
			item, err := line.Item.Get()
			if err != nil {
				return err
			}
			if err := s.repos.Items.Update(ctx, item); err != nil {
				return err
			}
		}

		total, err = order.TotalPrice()
		return err
	})
	if err != nil {
		s.logger.Error("order_cancel_failed", "Failed to cancel order", requestID, map[string]interface{}{"order_id": orderID}, err)
		return nil, err
	}

	s.metrics.OrderCancelled()
	s.logger.Info("order_cancelled", "Order cancelled", requestID, map[string]interface{}{"order_id": orderID})
	s.publish(ctx, order, total)

	return order, nil
}

// FindOne returns the order with member, delivery, order items and items resolved.
func (s *Service) FindOne(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order *domain.Order
	err := s.tx.InSession(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repos.Orders.FindOne(ctx, orderID)
		if err != nil {
			return err
		}
		return resolveAll(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// List reads every order using the configured strategy. For the entity
// strategies each relation the response needs is resolved before the
// session closes.
func (s *Service) List(ctx context.Context) (*interfaces.OrderListing, error) {
	listing := &interfaces.OrderListing{Strategy: s.strategy}

	if s.strategy == interfaces.ListProjection {
		summaries, err := s.ListSummaries(ctx)
		if err != nil {
			return nil, err
		}
		listing.Summaries = summaries
		return listing, nil
	}

	err := s.tx.InSession(ctx, func(ctx context.Context) error {
		orders, err := s.repos.Orders.FindAll(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			switch s.strategy {
			case interfaces.ListFullEntity:
				err = resolveAll(ctx, o)
			case interfaces.ListEagerTouch:
				err = resolveHeader(ctx, o)
			default:
				err = fmt.Errorf("unknown order list strategy %q", s.strategy)
			}
			if err != nil {
				return err
			}
		}
		listing.Orders = orders
		return nil
	})
	if err != nil {
		s.logger.Error("order_list_failed", "Failed to list orders", logger.RequestID(ctx), map[string]interface{}{"strategy": s.strategy}, err)
		return nil, err
	}
	return listing, nil
}

// ListSummaries reads the flattened order view with a single query.
func (s *Service) ListSummaries(ctx context.Context) ([]domain.OrderSummary, error) {
	var summaries []domain.OrderSummary
	err := s.tx.InSession(ctx, func(ctx context.Context) error {
		var err error
		summaries, err = s.repos.Queries.FindOrderSummaries(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("order_summaries_failed", "Failed to read order summaries", logger.RequestID(ctx), nil, err)
		return nil, err
	}
	return summaries, nil
}

func (s *Service) publish(ctx context.Context, order *domain.Order, total int) {
	msg := interfaces.OrderStatusMessage{
		OrderID:    order.ID,
		MemberID:   order.Member.ID,
		Status:     order.Status,
		TotalPrice: total,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.publisher.PublishOrderStatus(ctx, msg); err != nil {
		s.logger.Error("rabbitmq_publish_failed", "Failed to publish order status", logger.RequestID(ctx), map[string]interface{}{
			"order_id": order.ID,
			"status":   order.Status,
		}, err)
	}
}

// resolveHeader loads member and delivery.
func resolveHeader(ctx context.Context, o *domain.Order) error {
	if _, err := o.Member.Resolve(ctx); err != nil {
		return err
	}
	_, err := o.Delivery.Resolve(ctx)
	return err
}

// resolveAll loads member, delivery, order items and each ordered item.
func resolveAll(ctx context.Context, o *domain.Order) error {
	if err := resolveHeader(ctx, o); err != nil {
		return err
	}
	lines, err := o.OrderItems.Resolve(ctx)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := line.Item.Resolve(ctx); err != nil {
			return err
		}
	}
	return nil
}

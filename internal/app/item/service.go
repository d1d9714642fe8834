package item

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/logger"
	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

type Service struct {
	tx     interfaces.Transactor
	repo   interfaces.ItemRepository
	logger logger.Logger
}

func NewService(tx interfaces.Transactor, repo interfaces.ItemRepository, log logger.Logger) *Service {
	return &Service{tx: tx, repo: repo, logger: log}
}

func (s *Service) SaveItem(ctx context.Context, cmd interfaces.CreateItemCommand) (int64, error) {
	requestID := logger.RequestID(ctx)

	item, err := domain.NewItem(cmd.Name, cmd.Price, cmd.StockQuantity)
	if err != nil {
		s.logger.Debug("validation_failed", "Item validation failed", requestID, map[string]interface{}{"name": cmd.Name})
		return 0, err
	}

	err = s.tx.InSession(ctx, func(ctx context.Context) error {
		return s.repo.Save(ctx, item)
	})
	if err != nil {
		s.logger.Error("db_transaction_failed", "Failed to save item", requestID, nil, err)
		return 0, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item_created", "Item stocked", requestID, map[string]interface{}{
		"item_id": item.ID,
		"stock":   item.StockQuantity,
	})
	return item.ID, nil
}

func (s *Service) FindItems(ctx context.Context) ([]*domain.Item, error) {
	var items []*domain.Item
	err := s.tx.InSession(ctx, func(ctx context.Context) error {
		var err error
		items, err = s.repo.FindAll(ctx)
		return err
	})
	return items, err
}

package member

import (
	"context"
	"fmt"
	"time"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/logger"
	"github.com/YelzhanWeb/ordersystem/internal/adapter/metrics"
	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

type Service struct {
	tx        interfaces.Transactor
	repo      interfaces.MemberRepository
	publisher interfaces.MessagePublisher
	metrics   *metrics.Metrics
	logger    logger.Logger
}

func NewService(
	tx interfaces.Transactor,
	repo interfaces.MemberRepository,
	publisher interfaces.MessagePublisher,
	m *metrics.Metrics,
	log logger.Logger,
) *Service {
	return &Service{
		tx:        tx,
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    log,
	}
}

// Join registers a new member and announces it once the session commits.
func (s *Service) Join(ctx context.Context, cmd interfaces.JoinMemberCommand) (int64, error) {
	requestID := logger.RequestID(ctx)

	member, err := domain.NewMember(cmd.Name)
	if err != nil {
		s.logger.Debug("validation_failed", "Member validation failed", requestID, map[string]interface{}{"name": cmd.Name})
		return 0, err
	}

	err = s.tx.InSession(ctx, func(ctx context.Context) error {
		return s.repo.Save(ctx, member)
	})
	if err != nil {
		s.logger.Error("db_transaction_failed", "Failed to save member", requestID, nil, err)
		return 0, fmt.Errorf("failed to save member: %w", err)
	}

	s.metrics.MemberJoined()
	s.logger.Info("member_joined", "Member registered", requestID, map[string]interface{}{"member_id": member.ID})

	msg := interfaces.MemberJoinedMessage{
		MemberID:  member.ID,
		Name:      member.Name,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.PublishMemberJoined(ctx, msg); err != nil {
		s.logger.Error("rabbitmq_publish_failed", "Failed to publish member joined", requestID, map[string]interface{}{"member_id": member.ID}, err)
	}

	return member.ID, nil
}

// Update renames the member with the given id.
func (s *Service) Update(ctx context.Context, id int64, name string) (*domain.Member, error) {
	requestID := logger.RequestID(ctx)

	var member *domain.Member
	err := s.tx.InSession(ctx, func(ctx context.Context) error {
		var err error
		member, err = s.repo.FindOne(ctx, id)
		if err != nil {
			return err
		}
		if err := member.Rename(name); err != nil {
			return err
		}
		return s.repo.Update(ctx, member)
	})
	if err != nil {
		s.logger.Debug("member_update_failed", "Failed to update member", requestID, map[string]interface{}{"member_id": id, "error": err.Error()})
		return nil, err
	}

	s.logger.Info("member_updated", "Member renamed", requestID, map[string]interface{}{"member_id": id})
	return member, nil
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Member, error) {
	var member *domain.Member
	err := s.tx.InSession(ctx, func(ctx context.Context) error {
		var err error
		member, err = s.repo.FindOne(ctx, id)
		return err
	})
	return member, err
}

func (s *Service) FindMembers(ctx context.Context) ([]*domain.Member, error) {
	var members []*domain.Member
	err := s.tx.InSession(ctx, func(ctx context.Context) error {
		var err error
		members, err = s.repo.FindAll(ctx)
		return err
	})
	return members, err
}

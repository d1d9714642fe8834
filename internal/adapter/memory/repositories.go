package memory

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

type memberRepository struct{ s *Store }

func NewMemberRepository(s *Store) interfaces.MemberRepository {
	return &memberRepository{s: s}
}

func (r *memberRepository) Save(ctx context.Context, member *domain.Member) error {
	r.s.observe("exec")
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	member.ID = r.s.next("member")
	r.s.members[member.ID] = *member
	return nil
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	r.s.observe("exec")
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.members[member.ID]; !ok {
		return fmt.Errorf("member %d: %w", member.ID, domain.ErrNotFound)
	}
	r.s.members[member.ID] = *member
	return nil
}

func (r *memberRepository) FindOne(ctx context.Context, id int64) (*domain.Member, error) {
	return r.s.member(id)
}

func (r *memberRepository) FindAll(ctx context.Context) ([]*domain.Member, error) {
	r.s.observe("query")
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	members := make([]*domain.Member, 0, len(r.s.members))
	for _, id := range sortedKeys(r.s.members) {
		m := r.s.members[id]
		members = append(members, &m)
	}
	return members, nil
}

type itemRepository struct{ s *Store }

func NewItemRepository(s *Store) interfaces.ItemRepository {
	return &itemRepository{s: s}
}

func (r *itemRepository) Save(ctx context.Context, item *domain.Item) error {
	r.s.observe("exec")
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item.ID = r.s.next("item")
	r.s.items[item.ID] = *item
	return nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	r.s.observe("exec")
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.items[item.ID]; !ok {
		return fmt.Errorf("item %d: %w", item.ID, domain.ErrNotFound)
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *itemRepository) FindOne(ctx context.Context, id int64) (*domain.Item, error) {
	return r.s.item(id)
}

func (r *itemRepository) FindOneForUpdate(ctx context.Context, id int64) (*domain.Item, error) {
	r.s.lockForUpdate(ctx)
	return r.s.item(id)
}

func (r *itemRepository) FindAll(ctx context.Context) ([]*domain.Item, error) {
	r.s.observe("query")
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]*domain.Item, 0, len(r.s.items))
	for _, id := range sortedKeys(r.s.items) {
		it := r.s.items[id]
		items = append(items, &it)
	}
	return items, nil
}

func (s *Store) member(id int64) (*domain.Member, error) {
	s.observe("query")
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok {
		return nil, fmt.Errorf("member %d: %w", id, domain.ErrNotFound)
	}
	return &m, nil
}

func (s *Store) item(id int64) (*domain.Item, error) {
	s.observe("query")
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return &it, nil
}

func (s *Store) delivery(id int64) (*domain.Delivery, error) {
	s.observe("query")
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.deliveries[id]
	if !ok {
		return nil, fmt.Errorf("delivery %d: %w", id, domain.ErrNotFound)
	}
	return &d, nil
}

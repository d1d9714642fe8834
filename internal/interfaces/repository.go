package interfaces

import (
	"context"

	"github.com/YelzhanWeb/ordersystem/internal/domain"
)

// Transactor runs fn inside one data-access scope. The scope commits when fn
// returns nil, rolls back otherwise, and is closed on every exit path.
// Calls made while a scope is already in ctx join it.
type Transactor interface {
	InSession(ctx context.Context, fn func(ctx context.Context) error) error
}

type MemberRepository interface {
	Save(ctx context.Context, member *domain.Member) error
	Update(ctx context.Context, member *domain.Member) error
	FindOne(ctx context.Context, id int64) (*domain.Member, error)
	FindAll(ctx context.Context) ([]*domain.Member, error)
}

type ItemRepository interface {
	Save(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	FindOne(ctx context.Context, id int64) (*domain.Item, error)
	// FindOneForUpdate reads the item and locks it until the session in ctx
	// ends, so its stock can be changed without a lost update.
	FindOneForUpdate(ctx context.Context, id int64) (*domain.Item, error)
	FindAll(ctx context.Context) ([]*domain.Item, error)
}

// OrderRepository returns orders whose relations are deferred refs bound to
// the scope found in ctx.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, order *domain.Order) error
	FindOne(ctx context.Context, id int64) (*domain.Order, error)
	// FindOneForUpdate is FindOne holding the order's lock until the session
	// in ctx ends.
	FindOneForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	FindAll(ctx context.Context) ([]*domain.Order, error)
}

// OrderQueryRepository serves flattened read models with one query each.
type OrderQueryRepository interface {
	FindOrderSummaries(ctx context.Context) ([]domain.OrderSummary, error)
}

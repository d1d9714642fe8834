package interfaces

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/ordersystem/internal/domain"
)

// ListStrategy selects how GET /api/orders reads its data.
type ListStrategy string

const (
	// ListFullEntity loads orders and resolves member, delivery, order items
	// and items one query at a time.
	ListFullEntity ListStrategy = "full-entity"
	// ListEagerTouch loads orders and resolves member and delivery only.
	ListEagerTouch ListStrategy = "eager-touch"
	// ListProjection reads flattened summaries with a single join query.
	ListProjection ListStrategy = "projection"
)

func ParseListStrategy(s string) (ListStrategy, error) {
	switch ListStrategy(s) {
	case ListFullEntity, ListEagerTouch, ListProjection:
		return ListStrategy(s), nil
	case "":
		return ListProjection, nil
	}
	return "", fmt.Errorf("unknown order list strategy %q", s)
}

// Service commands
type JoinMemberCommand struct {
	Name string
}

type CreateItemCommand struct {
	Name          string
	Price         int
	StockQuantity int
}

type PlaceOrderCommand struct {
	MemberID int64
	ItemID   int64
	Count    int
	Address  string
}

// OrderListing is the result of one listing call. Orders is set for the
// entity strategies, Summaries for the projection strategy.
type OrderListing struct {
	Strategy  ListStrategy
	Orders    []*domain.Order
	Summaries []domain.OrderSummary
}

type MemberService interface {
	Join(ctx context.Context, cmd JoinMemberCommand) (int64, error)
	Update(ctx context.Context, id int64, name string) (*domain.Member, error)
	FindOne(ctx context.Context, id int64) (*domain.Member, error)
	FindMembers(ctx context.Context) ([]*domain.Member, error)
}

type ItemService interface {
	SaveItem(ctx context.Context, cmd CreateItemCommand) (int64, error)
	FindItems(ctx context.Context) ([]*domain.Item, error)
}

type OrderService interface {
	Order(ctx context.Context, cmd PlaceOrderCommand) (int64, error)
	Cancel(ctx context.Context, orderID int64) (*domain.Order, error)
	FindOne(ctx context.Context, orderID int64) (*domain.Order, error)
	List(ctx context.Context) (*OrderListing, error)
	ListSummaries(ctx context.Context) ([]domain.OrderSummary, error)
}

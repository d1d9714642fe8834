package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

type orderQueryRepository struct {
	db DB
}

func NewOrderQueryRepository(db DB) interfaces.OrderQueryRepository {
	return &orderQueryRepository{db: db}
}

// FindOrderSummaries reads every order together with its owner name and
// delivery address in a single inner-join query. Orders without a member or
// a delivery row are not returned.
func (r *orderQueryRepository) FindOrderSummaries(ctx context.Context) ([]domain.OrderSummary, error) {
	query := `
		SELECT o.order_id, m.name, o.order_date, o.status, d.address
		FROM orders o
		JOIN member m ON m.member_id = o.member_id
		JOIN delivery d ON d.delivery_id = o.delivery_id
		ORDER BY o.order_id
	`

	rows, err := querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query order summaries: %w", err)
	}
	defer rows.Close()

	summaries := []domain.OrderSummary{}
	for rows.Next() {
		var s domain.OrderSummary
		if err := rows.Scan(&s.ID, &s.OwnerName, &s.OrderDate, &s.OrderStatus, &s.DeliveryAddress); err != nil {
			return nil, fmt.Errorf("failed to scan order summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query order summaries: %w", err)
	}
	return summaries, nil
}

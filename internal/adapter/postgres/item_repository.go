package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

type itemRepository struct {
	db DB
}

func NewItemRepository(db DB) interfaces.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Save(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO item (name, price, stock_quantity)
		VALUES ($1, $2, $3)
		RETURNING item_id
	`
	err := querier(ctx, r.db).QueryRow(ctx, query, item.Name, item.Price, item.StockQuantity).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE item
		SET name = $1, price = $2, stock_quantity = $3
		WHERE item_id = $4
	`
	tag, err := querier(ctx, r.db).Exec(ctx, query, item.Name, item.Price, item.StockQuantity, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %d: %w", item.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *itemRepository) FindOne(ctx context.Context, id int64) (*domain.Item, error) {
	return findItem(ctx, querier(ctx, r.db), id)
}

// FindOneForUpdate takes a row lock held by the session transaction.
func (r *itemRepository) FindOneForUpdate(ctx context.Context, id int64) (*domain.Item, error) {
	query := `SELECT item_id, name, price, stock_quantity FROM item WHERE item_id = $1 FOR UPDATE`

	var it domain.Item
	if err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(&it.ID, &it.Name, &it.Price, &it.StockQuantity); err != nil {
		return nil, notFound(err, "item", id)
	}
	return &it, nil
}

func (r *itemRepository) FindAll(ctx context.Context) ([]*domain.Item, error) {
	query := `SELECT item_id, name, price, stock_quantity FROM item ORDER BY item_id`

	rows, err := querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.StockQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func findItem(ctx context.Context, q Querier, id int64) (*domain.Item, error) {
	query := `SELECT item_id, name, price, stock_quantity FROM item WHERE item_id = $1`

	var it domain.Item
	if err := q.QueryRow(ctx, query, id).Scan(&it.ID, &it.Name, &it.Price, &it.StockQuantity); err != nil {
		return nil, notFound(err, "item", id)
	}
	return &it, nil
}

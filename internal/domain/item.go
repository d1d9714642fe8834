package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Item is a sellable product. Many order items point at the same Item.
type Item struct {
	ID            int64
	Name          string
	Price         int
	StockQuantity int
}

func NewItem(name string, price, stock int) (*Item, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return nil, fmt.Errorf("item name must be 1-100 characters: %w", ErrValidation)
	}
	if price < 0 {
		return nil, fmt.Errorf("item price must not be negative: %w", ErrValidation)
	}
	if stock < 0 {
		return nil, fmt.Errorf("item stock must not be negative: %w", ErrValidation)
	}
	return &Item{Name: name, Price: price, StockQuantity: stock}, nil
}

func (i *Item) AddStock(quantity int) {
	i.StockQuantity += quantity
}

// RemoveStock takes quantity out of stock, refusing to go below zero.
func (i *Item) RemoveStock(quantity int) error {
	rest := i.StockQuantity - quantity
	if rest < 0 {
		return fmt.Errorf("item %d has %d left, %d requested: %w", i.ID, i.StockQuantity, quantity, ErrNotEnoughStock)
	}
	i.StockQuantity = rest
	return nil
}

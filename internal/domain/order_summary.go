package domain

import "time"

// OrderSummary is the flattened read model of an order listing. It is built
// from a single joined row and carries no relationships.
type OrderSummary struct {
	ID              int64
	OwnerName       string
	OrderDate       time.Time
	OrderStatus     OrderStatus
	DeliveryAddress string
}

package domain

import (
	"fmt"
	"strings"
)

// Delivery is owned by exactly one order.
type Delivery struct {
	ID      int64
	Address string
	Status  DeliveryStatus
}

func NewDelivery(address string) (*Delivery, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("delivery address is required: %w", ErrValidation)
	}
	return &Delivery{Address: address, Status: DeliveryStatusReady}, nil
}

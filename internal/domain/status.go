package domain

type OrderStatus string

const (
	OrderStatusOrder  OrderStatus = "ORDER"
	OrderStatusCancel OrderStatus = "CANCEL"
)

type DeliveryStatus string

const (
	DeliveryStatusReady    DeliveryStatus = "READY"
	DeliveryStatusComplete DeliveryStatus = "COMP"
)

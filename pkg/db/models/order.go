package models

import (
	"time"

	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order is a checkout result. Items are cart line snapshots in the order
// they were purchased; Total already includes the platform commission.
type Order struct {
	ID              string             `json:"id"`
	Items           []CartItem         `json:"items"`
	Total           decimal.Decimal    `json:"total"`
	Status          enums.OrderStatus  `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
	DeliveryAddress *string            `json:"deliveryAddress,omitempty"`
	StatusHistory   []OrderStatusEntry `json:"statusHistory,omitempty"`
	TrackingNumber  *string            `json:"trackingNumber,omitempty"`
}

// OrderStatusEntry is one append-only status history checkpoint.
type OrderStatusEntry struct {
	Status      enums.OrderStatus `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Description string            `json:"description,omitempty"`
}

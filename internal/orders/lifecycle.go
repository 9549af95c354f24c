package orders

import (
	"time"

	"github.com/olgakuznetsova/minimarket-core/pkg/config"
	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
)

// Thresholds are the elapsed-time cutoffs driving the simulated
// fulfillment progression.
type Thresholds struct {
	Processing time.Duration
	Shipped    time.Duration
	Delivered  time.Duration
}

// DefaultThresholds mirrors the storefront's accelerated timeline.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Processing: time.Minute,
		Shipped:    2 * time.Minute,
		Delivered:  3 * time.Minute,
	}
}

// ThresholdsFromConfig lifts the configured durations.
func ThresholdsFromConfig(cfg config.OrdersConfig) Thresholds {
	return Thresholds{
		Processing: cfg.ProcessingAfter,
		Shipped:    cfg.ShippedAfter,
		Delivered:  cfg.DeliveredAfter,
	}
}

// DeriveStatus re-derives an order's status from elapsed time. The
// derivation is monotonic and idempotent: terminal statuses absorb, and an
// already-advanced order never regresses.
func DeriveStatus(current enums.OrderStatus, createdAt, now time.Time, th Thresholds) enums.OrderStatus {
	if current.IsTerminal() {
		return current
	}
	elapsed := now.Sub(createdAt)
	switch {
	case elapsed >= th.Delivered:
		return enums.OrderStatusDelivered
	case elapsed >= th.Shipped &&
		(current == enums.OrderStatusPending || current == enums.OrderStatusProcessing):
		return enums.OrderStatusShipped
	case elapsed >= th.Processing && current == enums.OrderStatusPending:
		return enums.OrderStatusProcessing
	default:
		return current
	}
}

// BuildHistory regenerates the full status history for the given status by
// replaying the crossed thresholds. Timestamps are synthetic checkpoints
// offset from creation, not real transition times.
func BuildHistory(status enums.OrderStatus, createdAt time.Time, th Thresholds) []models.OrderStatusEntry {
	history := []models.OrderStatusEntry{{
		Status:      enums.OrderStatusPending,
		Timestamp:   createdAt,
		Description: "Order placed and awaiting processing",
	}}

	reached := func(candidates ...enums.OrderStatus) bool {
		for _, c := range candidates {
			if status == c {
				return true
			}
		}
		return false
	}

	if reached(enums.OrderStatusProcessing, enums.OrderStatusShipped, enums.OrderStatusDelivered) {
		history = append(history, models.OrderStatusEntry{
			Status:      enums.OrderStatusProcessing,
			Timestamp:   createdAt.Add(th.Processing),
			Description: "Order accepted for processing by the seller",
		})
	}
	if reached(enums.OrderStatusShipped, enums.OrderStatusDelivered) {
		history = append(history, models.OrderStatusEntry{
			Status:      enums.OrderStatusShipped,
			Timestamp:   createdAt.Add(th.Shipped),
			Description: "Order handed over to the delivery service",
		})
	}
	if reached(enums.OrderStatusDelivered) {
		history = append(history, models.OrderStatusEntry{
			Status:      enums.OrderStatusDelivered,
			Timestamp:   createdAt.Add(th.Delivered),
			Description: "Order delivered",
		})
	}
	return history
}

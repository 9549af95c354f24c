package models

import "time"

// Review is buyer feedback left against a product of a delivered order.
// Uniqueness per (order, product) is a shell-level courtesy, not a data
// layer constraint.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	OrderID   string    `json:"orderId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

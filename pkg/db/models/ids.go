package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh identifier for products, sellers, and reviews.
func NewID() string {
	return uuid.NewString()
}

// NewOrderID returns the time-based order identifier: the creation instant
// in whole milliseconds, matching the storefront's order numbering.
func NewOrderID(createdAt time.Time) string {
	return strconv.FormatInt(createdAt.UnixMilli(), 10)
}

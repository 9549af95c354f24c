package models

import (
	"time"

	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
)

// Seller is a storefront merchant. Catalog fixtures carry only the public
// fields; sellers registered through the panel additionally carry the
// credential and monetization fields. The password is stored in plain text,
// a deliberate development-grade placeholder rather than a security
// boundary.
type Seller struct {
	ID                     string                `json:"id"`
	Name                   string                `json:"name"`
	Avatar                 string                `json:"avatar"`
	Rating                 float64               `json:"rating"`
	ReviewsCount           int                   `json:"reviewsCount"`
	PositiveReviewsPercent int                   `json:"positiveReviewsPercent"`
	Email                  *string               `json:"email,omitempty"`
	Password               *string               `json:"password,omitempty"`
	Description            *string               `json:"description,omitempty"`
	Category               *string               `json:"category,omitempty"`
	CommissionType         *enums.CommissionType `json:"commissionType,omitempty"`
	CreatedAt              *time.Time            `json:"createdAt,omitempty"`
}

// Public returns a credential-stripped copy safe to embed in product
// snapshots and the session slot.
func (s Seller) Public() Seller {
	s.Email = nil
	s.Password = nil
	return s
}

package models

import "github.com/shopspring/decimal"

// Product is a catalog listing. The embedded Seller is a denormalized
// snapshot taken when the product is written; it is not a live reference.
type Product struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	OldPrice     *decimal.Decimal `json:"oldPrice,omitempty"`
	Image        string           `json:"image"`
	Category     string           `json:"category"`
	Seller       Seller           `json:"seller"`
	InStock      bool             `json:"inStock"`
	Rating       float64          `json:"rating"`
	ReviewsCount int              `json:"reviewsCount"`
}

package models

import "github.com/shopspring/decimal"

// CartItem is one cart line: a product snapshot and its quantity. The cart
// never holds two lines for the same product id and never a zero quantity.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is the line total using the snapshotted unit price.
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

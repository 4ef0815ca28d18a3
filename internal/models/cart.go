package models

import "github.com/shopspring/decimal"

// CartItem is a product snapshot plus a quantity. Orders hold these by value.
type CartItem struct {
	Product  `bson:",inline"`
	Quantity int `bson:"quantity" json:"quantity"`
}

// LineTotal is price times quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

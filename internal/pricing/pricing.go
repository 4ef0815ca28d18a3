// Package pricing turns line items and an optional coupon into the figures
// shown in the cart, charged at checkout and printed on the invoice.
package pricing

import (
	"alhyra_organics/internal/models"

	"github.com/shopspring/decimal"
)

var (
	// FreeShippingAbove is exclusive: a subtotal of exactly 999 still pays.
	FreeShippingAbove = decimal.NewFromInt(999)
	ShippingFee       = decimal.NewFromInt(50)
)

type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discountAmount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Quote prices the items. coupon may be nil.
func Quote(items []models.CartItem, coupon *models.Coupon) Summary {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	discount := decimal.Zero
	if coupon != nil {
		discount = Discount(subtotal, coupon.DiscountPercentage)
	}

	shipping := Shipping(subtotal)
	total := subtotal.Sub(discount).Add(shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Summary{Subtotal: subtotal, Discount: discount, Shipping: shipping, Total: total}
}

// Discount is pct percent of subtotal, rounded half away from zero to whole rupees.
func Discount(subtotal decimal.Decimal, pct int) decimal.Decimal {
	return subtotal.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100)).Round(0)
}

func Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingAbove) {
		return decimal.Zero
	}
	return ShippingFee
}

// AmountToFreeShipping is how much more the cart needs before shipping is
// waived, or zero once it already is.
func AmountToFreeShipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingAbove) {
		return decimal.Zero
	}
	return FreeShippingAbove.Sub(subtotal).Add(decimal.NewFromInt(1))
}

// Package invoice lays out the figures printed on a customer's tax invoice.
package invoice

import (
	"time"

	"alhyra_organics/internal/models"
	"alhyra_organics/internal/pricing"

	"github.com/shopspring/decimal"
)

const SellerFSSAI = "22423567000123"

type Line struct {
	Name      string
	Weight    string
	UnitPrice decimal.Decimal
	Quantity  int
	Amount    decimal.Decimal
}

type Invoice struct {
	Number     string
	Date       time.Time
	Status     models.OrderStatus
	Payment    models.PaymentStatus
	BillTo     models.Address
	Lines      []Line
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	Discount   decimal.Decimal
	CouponCode string
	GrandTotal decimal.Decimal
	FSSAI      string
}

// Build reads every amount off the order so the invoice always matches what
// was charged at checkout.
func Build(o models.Order) Invoice {
	inv := Invoice{
		Number:     o.ID,
		Date:       o.CreatedAt,
		Status:     o.OrderStatus,
		Payment:    o.PaymentStatus,
		BillTo:     o.Address,
		Subtotal:   o.Subtotal,
		Shipping:   o.Shipping,
		Discount:   o.DiscountAmount,
		CouponCode: o.CouponCode,
		GrandTotal: o.TotalAmount,
		FSSAI:      SellerFSSAI,
	}
	for _, item := range o.Items {
		inv.Lines = append(inv.Lines, Line{
			Name:      item.Name,
			Weight:    item.Weight,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
			Amount:    item.LineTotal(),
		})
	}

	// Orders stored before subtotal and shipping were recorded.
	if inv.Subtotal.IsZero() && len(o.Items) > 0 {
		q := pricing.Quote(o.Items, nil)
		inv.Subtotal, inv.Shipping = q.Subtotal, q.Shipping
	}
	return inv
}

// HasDiscount reports whether a coupon line should be printed.
func (inv Invoice) HasDiscount() bool {
	return inv.Discount.IsPositive()
}

// INR formats an amount as the invoice prints it, e.g. "INR 225.00".
func INR(d decimal.Decimal) string {
	return "INR " + d.StringFixed(2)
}

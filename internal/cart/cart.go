// Package cart holds a shopper's line items and applied coupon for the
// duration of a session.
package cart

import (
	"encoding/gob"
	"time"

	"alhyra_organics/internal/coupon"
	"alhyra_organics/internal/models"
	"alhyra_organics/internal/pricing"
)

func init() {
	// Carts travel inside gob-encoded session data.
	gob.Register(Cart{})
}

type Cart struct {
	Items  []models.CartItem
	Coupon *models.Coupon
}

// MaxQuantity caps a single cart line.
const MaxQuantity = 99

// Add puts qty units of p in the cart, merging with an existing line for
// the same product. Quantities below one count as one and a line never
// holds more than MaxQuantity.
func (c *Cart) Add(p models.Product, qty int) {
	qty = min(max(qty, 1), MaxQuantity)
	for i := range c.Items {
		if c.Items[i].ID == p.ID {
			c.Items[i].Quantity = clampQuantity(c.Items[i].Quantity + qty)
			return
		}
	}
	c.Items = append(c.Items, models.CartItem{Product: p, Quantity: qty})
}

// UpdateQuantity shifts a line's quantity by delta, keeping it between one
// and MaxQuantity. It reports whether the product was in the cart.
func (c *Cart) UpdateQuantity(productID string, delta int) bool {
	delta = min(max(delta, -MaxQuantity), MaxQuantity)
	for i := range c.Items {
		if c.Items[i].ID == productID {
			c.Items[i].Quantity = clampQuantity(clampQuantity(c.Items[i].Quantity) + delta)
			return true
		}
	}
	return false
}

func clampQuantity(q int) int {
	return min(max(q, 1), MaxQuantity)
}

func (c *Cart) Remove(productID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// Clear empties the cart and drops the applied coupon.
func (c *Cart) Clear() {
	c.Items = nil
	c.Coupon = nil
}

// ApplyCoupon validates code and, on success, replaces whatever coupon was
// applied before. On failure the cart is left as it was.
func (c *Cart) ApplyCoupon(code string, coupons []models.Coupon, now time.Time) (models.Coupon, error) {
	found, err := coupon.Validate(code, coupons, now)
	if err != nil {
		return models.Coupon{}, err
	}
	c.Coupon = &found
	return found, nil
}

func (c *Cart) RemoveCoupon() {
	c.Coupon = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Quote prices the cart exactly as checkout will.
func (c *Cart) Quote() pricing.Summary {
	return pricing.Quote(c.Items, c.Coupon)
}

// Snapshot copies the line items so later cart edits cannot reach them.
func (c *Cart) Snapshot() []models.CartItem {
	return append([]models.CartItem(nil), c.Items...)
}

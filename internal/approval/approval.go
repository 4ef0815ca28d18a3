// Package approval is the seller's review checklist for a pending order:
// every line item ticked off and the payment confirmed before it can move on.
package approval

import (
	"encoding/gob"

	"alhyra_organics/internal/models"
)

func init() {
	gob.Register(Review{})
}

type Blocker string

const (
	ItemsNotFullyVerified Blocker = "ItemsNotFullyVerified"
	PaymentNotVerified    Blocker = "PaymentNotVerified"
)

// CanApprove reports whether every item id in the order is in verified and
// the payment has been checked. Repeated ids need only one tick.
func CanApprove(order models.Order, verified map[string]bool, paymentVerified bool) bool {
	return len(blockers(order, verified, paymentVerified)) == 0
}

func blockers(order models.Order, verified map[string]bool, paymentVerified bool) []Blocker {
	var out []Blocker
	for _, item := range order.Items {
		if !verified[item.ID] {
			out = append(out, ItemsNotFullyVerified)
			break
		}
	}
	if !paymentVerified {
		out = append(out, PaymentNotVerified)
	}
	return out
}

// Review is one admin's open checklist. It is never stored on the order;
// opening a review always starts from scratch.
type Review struct {
	OrderID         string
	Verified        map[string]bool
	PaymentVerified bool
}

func Open(orderID string) Review {
	return Review{OrderID: orderID, Verified: make(map[string]bool)}
}

// ToggleItem flips the tick on an item and returns its new state.
func (r *Review) ToggleItem(itemID string) bool {
	if r.Verified == nil {
		r.Verified = make(map[string]bool)
	}
	if r.Verified[itemID] {
		delete(r.Verified, itemID)
		return false
	}
	r.Verified[itemID] = true
	return true
}

func (r *Review) SetPaymentVerified(v bool) {
	r.PaymentVerified = v
}

// Blockers lists what still stands between the order and approval.
func (r Review) Blockers(order models.Order) []Blocker {
	return blockers(order, r.Verified, r.PaymentVerified)
}

func (r Review) CanApprove(order models.Order) bool {
	return r.OrderID == order.ID && CanApprove(order, r.Verified, r.PaymentVerified)
}

// Package notify formats order messages for the shop's WhatsApp hand-off and
// publishes them for delivery.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"alhyra_organics/internal/models"
)

const ShopName = "Al Hyra Organics"

type Kind string

const (
	KindOrderRequested Kind = "order.requested"
	KindOrderApproved  Kind = "order.approved"
)

// Message is a ready-to-send text plus the wa.me link that pre-fills it.
type Message struct {
	Kind    Kind   `json:"kind"`
	OrderID string `json:"orderId"`
	To      string `json:"to"`
	Text    string `json:"text"`
	Link    string `json:"link"`
}

// OrderRequestMessage is what the shopper sends the business after checkout.
func OrderRequestMessage(o models.Order, businessPhone string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Order Confirmation Request from %s!\n", ShopName)
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	b.WriteString("Status: Awaiting Seller Approval\n")
	fmt.Fprintf(&b, "Customer: %s\n", o.Address.FullName)
	fmt.Fprintf(&b, "Items: %s", itemsText(o.Items))
	if o.CouponCode != "" {
		fmt.Fprintf(&b, "\nCoupon: %s (-₹%s)", o.CouponCode, o.DiscountAmount)
	}
	fmt.Fprintf(&b, "\nTotal: ₹%s\n", o.TotalAmount)
	fmt.Fprintf(&b, "Address: %s, %s, %s\n", o.Address.Street, o.Address.City, o.Address.ZipCode)
	fmt.Fprintf(&b, "Payment: %s", o.PaymentStatus)

	to := Digits(businessPhone)
	return Message{
		Kind:    KindOrderRequested,
		OrderID: o.ID,
		To:      to,
		Text:    b.String(),
		Link:    Link(to, b.String()),
	}
}

// ApprovalMessage tells the customer their order was approved. notes may be empty.
func ApprovalMessage(o models.Order, notes string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s, your order %s at %s has been APPROVED! 🌿 We are now preparing your package.\n\n",
		o.Address.FullName, o.ID, ShopName)
	fmt.Fprintf(&b, "Items: %s\n", itemsText(o.Items))
	fmt.Fprintf(&b, "Total: ₹%s\n", o.TotalAmount)
	fmt.Fprintf(&b, "Delivering to: %s, %s, %s", o.Address.Street, o.Address.City, o.Address.ZipCode)
	if notes != "" {
		fmt.Fprintf(&b, "\n\nNotes from Seller: %s", notes)
	}
	b.WriteString("\n\nThank you for choosing organic wellness!")

	to := CustomerPhone(o.Address.Phone)
	return Message{
		Kind:    KindOrderApproved,
		OrderID: o.ID,
		To:      to,
		Text:    b.String(),
		Link:    Link(to, b.String()),
	}
}

func itemsText(items []models.CartItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%s x%d", item.Name, item.Quantity)
	}
	return strings.Join(parts, ", ")
}

// Digits strips everything but 0-9.
func Digits(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

// CustomerPhone returns the digits of phone with the India country code
// added unless it is already there.
func CustomerPhone(phone string) string {
	d := Digits(phone)
	if strings.HasPrefix(d, "91") {
		return d
	}
	return "91" + d
}

// Link builds a wa.me deep link. Spaces are sent as %20 rather than '+'.
func Link(phone, text string) string {
	return "https://wa.me/" + phone + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

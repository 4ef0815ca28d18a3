package main

import (
	"context"
	"math"
	"net/http"
	"strings"
	"testing"

	"alhyra_organics/internal/approval"
	"alhyra_organics/internal/cart"
	"alhyra_organics/internal/models"
	"alhyra_organics/internal/notify"
	"alhyra_organics/internal/orders"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t).routes())

	code, body := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestListProducts(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t).routes())

	code, body := ts.do(t, http.MethodGet, "/products?category=Health%20Mix&sort=price-low", nil)
	require.Equal(t, http.StatusOK, code)

	var products []models.Product
	field(t, body, "products", &products)
	require.Len(t, products, 4)
	for i, p := range products {
		assert.Equal(t, "Health Mix", p.Category)
		if i > 0 {
			assert.True(t, products[i-1].Price.LessThanOrEqual(p.Price))
		}
	}

	code, body = ts.do(t, http.MethodGet, "/products?search=RAGI", nil)
	require.Equal(t, http.StatusOK, code)
	field(t, body, "products", &products)
	require.Len(t, products, 1)
	assert.Equal(t, "8", products[0].ID)
}

func TestShowProduct(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t).routes())

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{"Known", "/products/1", http.StatusOK},
		{"Unknown", "/products/99", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := ts.do(t, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestRateProduct(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t).routes())

	code, _ := ts.do(t, http.MethodPost, "/products/1/ratings", map[string]int{"stars": 6})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := ts.do(t, http.MethodPost, "/products/1/ratings", map[string]int{"stars": 5})
	require.Equal(t, http.StatusOK, code)
	var p models.Product
	field(t, body, "product", &p)
	assert.Equal(t, 125, p.ReviewCount)
	assert.InDelta(t, 4.8, p.Rating, 0.001)
}

func TestCategoriesAndPages(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t).routes())

	code, body := ts.do(t, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, code)
	var cats []string
	field(t, body, "categories", &cats)
	require.NotEmpty(t, cats)
	assert.Equal(t, "All", cats[0])
	assert.Contains(t, cats, "Prophetic Medicine")

	code, body = ts.do(t, http.MethodGet, "/pages/about", nil)
	require.Equal(t, http.StatusOK, code)
	var page models.StaticPage
	field(t, body, "page", &page)
	assert.Equal(t, "About Us", page.Title)

	code, _ = ts.do(t, http.MethodGet, "/pages/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCartAndCoupon(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, body := ts.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": "1", "quantity": 2})
	require.Equal(t, http.StatusOK, code, string(body))

	var view cartView
	field(t, body, "cart", &view)
	require.Len(t, view.Items, 1)
	assert.True(t, view.Summary.Subtotal.Equal(decimal.NewFromInt(450)))
	assert.True(t, view.Summary.Shipping.Equal(decimal.NewFromInt(50)))
	assert.True(t, view.Summary.Total.Equal(decimal.NewFromInt(500)))
	assert.True(t, view.AmountToFreeShipping.Equal(decimal.NewFromInt(550)))

	code, body = ts.do(t, http.MethodPost, "/cart/coupon", map[string]string{"code": "NOPE"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.JSONEq(t, `{"error":"Invalid coupon code.","kind":"INVALID_CODE"}`, string(body))

	code, body = ts.do(t, http.MethodPost, "/cart/coupon", map[string]string{"code": "organic10"})
	require.Equal(t, http.StatusOK, code, string(body))
	field(t, body, "cart", &view)
	require.NotNil(t, view.Coupon)
	assert.Equal(t, "ORGANIC10", view.Coupon.Code)
	assert.True(t, view.Summary.Discount.Equal(decimal.NewFromInt(45)))
	assert.True(t, view.Summary.Total.Equal(decimal.NewFromInt(455)))

	code, body = ts.do(t, http.MethodPatch, "/cart/items/1", map[string]int{"delta": -5})
	require.Equal(t, http.StatusOK, code)
	field(t, body, "cart", &view)
	assert.Equal(t, 1, view.Items[0].Quantity)

	code, _ = ts.do(t, http.MethodPatch, "/cart/items/7", map[string]int{"delta": 1})
	assert.Equal(t, http.StatusNotFound, code)

	code, body = ts.do(t, http.MethodDelete, "/cart/items/1", nil)
	require.Equal(t, http.StatusOK, code)
	field(t, body, "cart", &view)
	assert.Empty(t, view.Items)

	_, body = ts.do(t, http.MethodGet, "/metrics", nil)
	assert.Contains(t, string(body), `alhyra_coupons_rejected_total{kind="INVALID_CODE"} 1`)
}

func TestAddUnknownProduct(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t).routes())

	code, _ := ts.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": "404", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGuestCheckout(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, body := ts.do(t, http.MethodPost, "/checkout", map[string]any{"address": testAddress, "paymentMethod": "cod"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"Your cart is empty"}`, string(body))

	ts.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": "1", "quantity": 2})

	missing := testAddress
	missing.City = ""
	code, body = ts.do(t, http.MethodPost, "/checkout", map[string]any{"address": missing, "paymentMethod": "cod"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"City is required"}`, string(body))

	code, body = ts.do(t, http.MethodPost, "/checkout", map[string]any{"address": testAddress, "paymentMethod": "cod"})
	require.Equal(t, http.StatusCreated, code, string(body))

	var o models.Order
	field(t, body, "order", &o)
	assert.Regexp(t, `^ORD-[A-Z0-9]{9}$`, o.ID)
	assert.Equal(t, orders.GuestUserID, o.UserID)
	assert.Equal(t, models.StatusPending, o.OrderStatus)
	assert.Equal(t, models.PaymentCOD, o.PaymentStatus)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(500)))

	var msg notify.Message
	field(t, body, "confirmation", &msg)
	assert.Equal(t, notify.KindOrderRequested, msg.Kind)
	assert.True(t, strings.HasPrefix(msg.Link, "https://wa.me/"+businessPhone+"?text="))

	p, err := app.store.GetProduct(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 48, p.Stock)

	code, body = ts.do(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, code)
	var view cartView
	field(t, body, "cart", &view)
	assert.Empty(t, view.Items)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": "5", "quantity": 16})
	code, _ := ts.do(t, http.MethodPost, "/checkout", map[string]any{"address": testAddress, "paymentMethod": "upi"})
	assert.Equal(t, http.StatusConflict, code)

	p, err := app.store.GetProduct(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, 15, p.Stock)

	_, body := ts.do(t, http.MethodGet, "/cart", nil)
	var view cartView
	field(t, body, "cart", &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 16, view.Items[0].Quantity)
}

func TestCartQuantityBounds(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	for _, qty := range []int{math.MaxInt, -1, 100} {
		code, body := ts.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": "1", "quantity": qty})
		assert.Equal(t, http.StatusBadRequest, code, "quantity %d", qty)
		assert.JSONEq(t, `{"error":"Quantity must be between 1 and 99"}`, string(body))
	}

	code, body := ts.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": "1", "quantity": 2})
	require.Equal(t, http.StatusOK, code, string(body))

	for _, delta := range []int{math.MaxInt, math.MinInt, 100} {
		code, _ = ts.do(t, http.MethodPatch, "/cart/items/1", map[string]int{"delta": delta})
		assert.Equal(t, http.StatusBadRequest, code, "delta %d", delta)
	}

	code, body = ts.do(t, http.MethodPatch, "/cart/items/1", map[string]int{"delta": 99})
	require.Equal(t, http.StatusOK, code, string(body))
	var view cartView
	field(t, body, "cart", &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, cart.MaxQuantity, view.Items[0].Quantity)
	assert.True(t, view.Summary.Total.IsPositive())

	code, _ = ts.do(t, http.MethodPost, "/checkout", map[string]any{"address": testAddress, "paymentMethod": "cod"})
	assert.Equal(t, http.StatusConflict, code)
	p, err := app.store.GetProduct(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 50, p.Stock)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t).routes())

	code, body := ts.do(t, http.MethodPost, "/login", map[string]string{"email": adminEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.JSONEq(t, `{"error":"Invalid Admin password."}`, string(body))

	code, _ = ts.do(t, http.MethodPost, "/login", map[string]string{"email": "", "password": ""})
	assert.Equal(t, http.StatusBadRequest, code)

	ts.login(t, "ravi@example.com", "")
	code, body = ts.do(t, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, code)
	var u models.User
	field(t, body, "user", &u)
	assert.Equal(t, models.RoleCustomer, u.Role)
	assert.Equal(t, "ravi", u.Name)
}

func TestLogoutClearsCart(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t).routes())

	ts.login(t, "ravi@example.com", "")
	ts.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": "2", "quantity": 1})

	code, _ := ts.do(t, http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusOK, code)

	_, body := ts.do(t, http.MethodGet, "/cart", nil)
	var view cartView
	field(t, body, "cart", &view)
	assert.Empty(t, view.Items)

	code, _ = ts.do(t, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	h := newTestApplication(t).routes()

	anon := newTestServer(t, h)
	code, _ := anon.do(t, http.MethodGet, "/admin/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	customer := newTestServer(t, h)
	customer.login(t, "ravi@example.com", "")
	code, _ = customer.do(t, http.MethodGet, "/admin/orders", nil)
	assert.Equal(t, http.StatusForbidden, code)

	admin := newTestServer(t, h)
	admin.login(t, adminEmail, adminPassword)
	code, _ = admin.do(t, http.MethodGet, "/admin/orders", nil)
	assert.Equal(t, http.StatusOK, code)
}

// placeOrder checks out one ABC Malt for the logged-in session.
func placeOrder(t *testing.T, ts *testServer) models.Order {
	t.Helper()
	ts.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": "1", "quantity": 1})
	code, body := ts.do(t, http.MethodPost, "/checkout", map[string]any{"address": testAddress, "paymentMethod": "upi"})
	require.Equal(t, http.StatusCreated, code, string(body))
	var o models.Order
	field(t, body, "order", &o)
	return o
}

func TestApprovalFlow(t *testing.T) {
	h := newTestApplication(t).routes()

	customer := newTestServer(t, h)
	customer.login(t, "ayesha@example.com", "")
	o := placeOrder(t, customer)

	admin := newTestServer(t, h)
	admin.login(t, adminEmail, adminPassword)

	code, body := admin.do(t, http.MethodPost, "/admin/orders/"+o.ID+"/approve", map[string]string{"notes": "Thanks"})
	require.Equal(t, http.StatusConflict, code)
	var blockers []approval.Blocker
	field(t, body, "blockers", &blockers)
	assert.Equal(t, []approval.Blocker{approval.ItemsNotFullyVerified, approval.PaymentNotVerified}, blockers)

	code, _ = admin.do(t, http.MethodPatch, "/admin/orders/"+o.ID+"/status", map[string]string{"status": "Confirmed"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = admin.do(t, http.MethodPost, "/admin/orders/"+o.ID+"/review", nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = admin.do(t, http.MethodPost, "/admin/orders/"+o.ID+"/review/items/9", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = admin.do(t, http.MethodPost, "/admin/orders/"+o.ID+"/review/items/1", nil)
	require.Equal(t, http.StatusOK, code)
	var rev reviewView
	field(t, body, "review", &rev)
	assert.Equal(t, []string{"1"}, rev.VerifiedItems)
	assert.False(t, rev.CanApprove)
	assert.Equal(t, []approval.Blocker{approval.PaymentNotVerified}, rev.Blockers)

	code, body = admin.do(t, http.MethodPost, "/admin/orders/"+o.ID+"/review/payment", map[string]bool{"verified": true})
	require.Equal(t, http.StatusOK, code)
	field(t, body, "review", &rev)
	assert.True(t, rev.CanApprove)

	code, body = admin.do(t, http.MethodPost, "/admin/orders/"+o.ID+"/approve", map[string]string{"notes": " Packed fresh today "})
	require.Equal(t, http.StatusOK, code, string(body))
	var approved models.Order
	field(t, body, "order", &approved)
	assert.Equal(t, models.StatusConfirmed, approved.OrderStatus)
	assert.Equal(t, "Packed fresh today", approved.SellerNotes)

	var msg notify.Message
	field(t, body, "notification", &msg)
	assert.Equal(t, notify.KindOrderApproved, msg.Kind)
	assert.True(t, strings.HasPrefix(msg.Link, "https://wa.me/919876543210?text="))

	code, _ = admin.do(t, http.MethodPost, "/admin/orders/"+o.ID+"/approve", map[string]string{})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = admin.do(t, http.MethodPatch, "/admin/orders/"+o.ID+"/status", map[string]string{"status": "Shipped"})
	assert.Equal(t, http.StatusConflict, code)
	code, _ = admin.do(t, http.MethodPatch, "/admin/orders/"+o.ID+"/status", map[string]string{"status": "Lost"})
	assert.Equal(t, http.StatusBadRequest, code)

	for _, s := range []string{"Packed", "Shipped", "Delivered"} {
		code, body = admin.do(t, http.MethodPatch, "/admin/orders/"+o.ID+"/status", map[string]string{"status": s})
		require.Equal(t, http.StatusOK, code, string(body))
	}

	code, body = customer.do(t, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, code)
	var mine []models.Order
	field(t, body, "orders", &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, models.StatusDelivered, mine[0].OrderStatus)
}

func TestInvoice(t *testing.T) {
	h := newTestApplication(t).routes()

	owner := newTestServer(t, h)
	owner.login(t, "ayesha@example.com", "")
	o := placeOrder(t, owner)

	code, body := owner.do(t, http.MethodGet, "/orders/"+o.ID+"/invoice", nil)
	require.Equal(t, http.StatusOK, code)
	html := string(body)
	assert.Contains(t, html, "TAX INVOICE")
	assert.Contains(t, html, o.ID)
	assert.Contains(t, html, "INR 225.00")
	assert.Contains(t, html, "INR 275.00")
	assert.Contains(t, html, "FSSAI Lic. No: 22423567000123")

	other := newTestServer(t, h)
	other.login(t, "someone@example.com", "")
	code, _ = other.do(t, http.MethodGet, "/orders/"+o.ID+"/invoice", nil)
	assert.Equal(t, http.StatusNotFound, code)

	admin := newTestServer(t, h)
	admin.login(t, adminEmail, adminPassword)
	code, _ = admin.do(t, http.MethodGet, "/orders/"+o.ID+"/invoice", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestAdminCatalogAndCoupons(t *testing.T) {
	admin := newTestServer(t, newTestApplication(t).routes())
	admin.login(t, adminEmail, adminPassword)

	code, body := admin.do(t, http.MethodPost, "/admin/products", map[string]any{
		"name": "Dates Malt", "category": "Health Mix", "weight": "250g", "price": "190", "stock": 12,
	})
	require.Equal(t, http.StatusCreated, code, string(body))
	var p models.Product
	field(t, body, "product", &p)
	assert.NotEmpty(t, p.ID)

	code, _ = admin.do(t, http.MethodPost, "/admin/products", map[string]any{"name": "Free", "price": "0", "stock": 1})
	assert.Equal(t, http.StatusBadRequest, code)
	code, body = admin.do(t, http.MethodPost, "/admin/products", map[string]any{"name": "Odd", "price": "99.99", "stock": 1})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"Price must be in whole rupees"}`, string(body))
	code, body = admin.do(t, http.MethodPost, "/admin/products", map[string]any{"name": "Hyped", "price": "190", "rating": 9.5, "reviewCount": -4})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"Average rating must be between 0 and 5"}`, string(body))

	code, body = admin.do(t, http.MethodPut, "/admin/products/1", map[string]any{
		"name": "ABC Malt", "category": "Health Mix", "weight": "500g", "price": "420", "stock": 10,
	})
	require.Equal(t, http.StatusOK, code, string(body))
	field(t, body, "product", &p)
	assert.Equal(t, 124, p.ReviewCount)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(420)))

	code, _ = admin.do(t, http.MethodDelete, "/admin/products/2", nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = admin.do(t, http.MethodDelete, "/admin/products/2", nil)
	assert.Equal(t, http.StatusNotFound, code)

	coupon := map[string]any{"code": "monsoon20", "discountPercentage": 20, "expiryDate": "2027-06-30"}
	code, body = admin.do(t, http.MethodPost, "/admin/coupons", coupon)
	require.Equal(t, http.StatusCreated, code, string(body))
	code, _ = admin.do(t, http.MethodPost, "/admin/coupons", coupon)
	assert.Equal(t, http.StatusConflict, code)
	code, _ = admin.do(t, http.MethodPost, "/admin/coupons", map[string]any{"code": "BIG", "discountPercentage": 120, "expiryDate": "2027-06-30"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = admin.do(t, http.MethodDelete, "/admin/coupons/MONSOON20", nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, body = admin.do(t, http.MethodPut, "/admin/pages/shipping", map[string]string{"title": "Shipping", "content": "Free above INR 999."})
	require.Equal(t, http.StatusOK, code, string(body))
	code, _ = admin.do(t, http.MethodDelete, "/admin/pages/shipping", nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, body = admin.do(t, http.MethodGet, "/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, code)
	var stats orders.Stats
	field(t, body, "stats", &stats)
	assert.Equal(t, 8, stats.ActiveProducts)
}

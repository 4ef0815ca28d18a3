package main

import (
	"net/http"

	"github.com/bmizerany/pat"
)

func (app *application) routes() http.Handler {
	mux := pat.New()
	mux.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { app.notFound(w) })

	mux.Get("/healthz", http.HandlerFunc(app.healthz))
	mux.Get("/metrics", app.metrics.Handler())

	// session-bound routes
	s := app.session.LoadAndSave

	mux.Post("/login", s(http.HandlerFunc(app.loginUser)))
	mux.Post("/logout", s(http.HandlerFunc(app.logoutUser)))
	mux.Get("/me", s(http.HandlerFunc(app.me)))

	mux.Get("/products", http.HandlerFunc(app.listProducts))
	mux.Get("/products/:id", http.HandlerFunc(app.showProduct))
	mux.Post("/products/:id/ratings", http.HandlerFunc(app.rateProduct))
	mux.Get("/categories", http.HandlerFunc(app.listCategories))
	mux.Get("/pages", http.HandlerFunc(app.listPages))
	mux.Get("/pages/:id", http.HandlerFunc(app.showPage))

	mux.Get("/cart", s(http.HandlerFunc(app.showCart)))
	mux.Post("/cart/items", s(http.HandlerFunc(app.addToCart)))
	mux.Add(http.MethodPatch, "/cart/items/:id", s(http.HandlerFunc(app.updateCartQuantity)))
	mux.Del("/cart/items/:id", s(http.HandlerFunc(app.removeFromCart)))
	mux.Post("/cart/coupon", s(http.HandlerFunc(app.applyCoupon)))
	mux.Del("/cart/coupon", s(http.HandlerFunc(app.removeCoupon)))
	mux.Post("/checkout", s(http.HandlerFunc(app.checkout)))

	mux.Get("/orders", s(app.requireAuthentication(app.myOrders)))
	mux.Get("/orders/:id/invoice", s(app.requireAuthentication(app.showInvoice)))

	mux.Get("/admin/dashboard", s(app.requireAdmin(app.adminDashboard)))
	mux.Get("/admin/products", s(app.requireAdmin(app.adminProducts)))
	mux.Post("/admin/products", s(app.requireAdmin(app.createProduct)))
	mux.Put("/admin/products/:id", s(app.requireAdmin(app.updateProduct)))
	mux.Del("/admin/products/:id", s(app.requireAdmin(app.deleteProduct)))
	mux.Get("/admin/coupons", s(app.requireAdmin(app.adminCoupons)))
	mux.Post("/admin/coupons", s(app.requireAdmin(app.createCoupon)))
	mux.Del("/admin/coupons/:code", s(app.requireAdmin(app.deleteCoupon)))
	mux.Put("/admin/pages/:id", s(app.requireAdmin(app.updatePage)))
	mux.Del("/admin/pages/:id", s(app.requireAdmin(app.deletePage)))
	mux.Get("/admin/orders", s(app.requireAdmin(app.adminOrders)))
	mux.Post("/admin/orders/:id/review", s(app.requireAdmin(app.openReview)))
	mux.Post("/admin/orders/:id/review/items/:item", s(app.requireAdmin(app.toggleReviewItem)))
	mux.Post("/admin/orders/:id/review/payment", s(app.requireAdmin(app.verifyPayment)))
	mux.Post("/admin/orders/:id/approve", s(app.requireAdmin(app.approveOrder)))
	mux.Add(http.MethodPatch, "/admin/orders/:id/status", s(app.requireAdmin(app.updateOrderStatus)))
	mux.Put("/admin/orders/:id/notes", s(app.requireAdmin(app.updateOrderNotes)))

	return app.standard(mux)
}

// standard wraps every route. Panics are recovered inside the logger so the
// 500 they turn into is logged and counted like any other response.
func (app *application) standard(next http.Handler) http.Handler {
	return app.logRequest(app.recoverPanic(next))
}

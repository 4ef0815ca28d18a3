package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"alhyra_organics/internal/approval"
	"alhyra_organics/internal/cart"
	"alhyra_organics/internal/catalog"
	"alhyra_organics/internal/coupon"
	"alhyra_organics/internal/invoice"
	"alhyra_organics/internal/models"
	"alhyra_organics/internal/notify"
	"alhyra_organics/internal/orders"
	"alhyra_organics/internal/pricing"
	"alhyra_organics/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// --- BASE HELPERS ---

func (app *application) render(w http.ResponseWriter, r *http.Request, page string, data *TemplateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.serverError(w, r, fmt.Errorf("the template %s does not exist", page))
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", app.addDefaultData(data)); err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (app *application) healthz(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, envelope{"status": "ok"})
}

// --- AUTH HANDLERS ---

func (app *application) loginUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := app.users.Authenticate(r.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidCredentials):
			app.logger.Warn("admin login failed", zap.String("email", input.Email))
			app.errorJSON(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, repository.ErrEmailRequired):
			app.errorJSON(w, http.StatusBadRequest, err.Error())
		default:
			app.serverError(w, r, err)
		}
		return
	}

	if err := app.session.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.session.Put(r.Context(), sessionUserID, user.ID)
	app.session.Put(r.Context(), sessionRole, string(user.Role))
	app.session.Put(r.Context(), sessionName, user.Name)
	app.session.Put(r.Context(), sessionEmail, user.Email)

	app.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	app.writeJSON(w, http.StatusOK, envelope{"message": "Login successful.", "user": user})
}

// logoutUser ends the session, which also drops the cart and any open review.
func (app *application) logoutUser(w http.ResponseWriter, r *http.Request) {
	if err := app.session.Destroy(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "Logged out."})
}

func (app *application) me(w http.ResponseWriter, r *http.Request) {
	if !app.isAuthenticated(r) {
		app.writeJSON(w, http.StatusOK, envelope{"user": nil})
		return
	}
	ctx := r.Context()
	app.writeJSON(w, http.StatusOK, envelope{"user": models.User{
		ID:    app.session.GetString(ctx, sessionUserID),
		Name:  app.session.GetString(ctx, sessionName),
		Email: app.session.GetString(ctx, sessionEmail),
		Role:  models.Role(app.session.GetString(ctx, sessionRole)),
	}})
}

// --- PRODUCT & CATALOG HANDLERS ---

func (app *application) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := app.store.GetAllProducts(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	qs := r.URL.Query()
	app.writeJSON(w, http.StatusOK, envelope{"products": catalog.Filter(products, catalog.Query{
		Search:   qs.Get("search"),
		Category: qs.Get("category"),
		Sort:     qs.Get("sort"),
	})})
}

func (app *application) showProduct(w http.ResponseWriter, r *http.Request) {
	p, err := app.store.GetProduct(r.Context(), r.URL.Query().Get(":id"))
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"product": p})
}

func (app *application) rateProduct(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Stars int `json:"stars"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := catalog.ValidRating(input.Stars); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := app.store.RateProduct(r.Context(), r.URL.Query().Get(":id"), input.Stars)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"product": p})
}

func (app *application) listCategories(w http.ResponseWriter, r *http.Request) {
	products, err := app.store.GetAllProducts(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"categories": catalog.Categories(products)})
}

func (app *application) listPages(w http.ResponseWriter, r *http.Request) {
	pages, err := app.store.GetAllPages(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"pages": pages})
}

func (app *application) showPage(w http.ResponseWriter, r *http.Request) {
	p, err := app.store.GetPage(r.Context(), r.URL.Query().Get(":id"))
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"page": p})
}

// --- CART HANDLERS ---

type cartView struct {
	Items                []models.CartItem `json:"items"`
	Coupon               *models.Coupon    `json:"coupon"`
	Summary              pricing.Summary   `json:"summary"`
	AmountToFreeShipping decimal.Decimal   `json:"amountToFreeShipping"`
}

func newCartView(c *cart.Cart) cartView {
	items := c.Items
	if items == nil {
		items = []models.CartItem{}
	}
	q := c.Quote()
	return cartView{
		Items:                items,
		Coupon:               c.Coupon,
		Summary:              q,
		AmountToFreeShipping: pricing.AmountToFreeShipping(q.Subtotal),
	}
}

func (app *application) showCart(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, envelope{"cart": newCartView(app.getCart(r))})
}

func (app *application) addToCart(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	// Zero means the field was left out and adds a single unit.
	if input.Quantity < 0 || input.Quantity > cart.MaxQuantity {
		app.errorJSON(w, http.StatusBadRequest, fmt.Sprintf("Quantity must be between 1 and %d", cart.MaxQuantity))
		return
	}

	p, err := app.store.GetProduct(r.Context(), input.ProductID)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.errorJSON(w, http.StatusNotFound, "Product not found")
			return
		}
		app.serverError(w, r, err)
		return
	}
	if p.Stock < 1 {
		app.errorJSON(w, http.StatusConflict, "Out of stock")
		return
	}

	c := app.getCart(r)
	c.Add(p, input.Quantity)
	app.putCart(r, c)
	app.writeJSON(w, http.StatusOK, envelope{"cart": newCartView(c)})
}

func (app *application) updateCartQuantity(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Delta int `json:"delta"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.Delta < -cart.MaxQuantity || input.Delta > cart.MaxQuantity {
		app.errorJSON(w, http.StatusBadRequest, fmt.Sprintf("Quantity change must be between -%d and %d", cart.MaxQuantity, cart.MaxQuantity))
		return
	}

	c := app.getCart(r)
	if !c.UpdateQuantity(r.URL.Query().Get(":id"), input.Delta) {
		app.errorJSON(w, http.StatusNotFound, "Item not in cart")
		return
	}
	app.putCart(r, c)
	app.writeJSON(w, http.StatusOK, envelope{"cart": newCartView(c)})
}

func (app *application) removeFromCart(w http.ResponseWriter, r *http.Request) {
	c := app.getCart(r)
	c.Remove(r.URL.Query().Get(":id"))
	app.putCart(r, c)
	app.writeJSON(w, http.StatusOK, envelope{"cart": newCartView(c)})
}

func (app *application) applyCoupon(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Code string `json:"code"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	coupons, err := app.store.GetAllCoupons(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	c := app.getCart(r)
	if _, err := c.ApplyCoupon(input.Code, coupons, app.now()); err != nil {
		kind := coupon.KindOf(err)
		app.metrics.CouponRejected(kind.String())
		app.writeJSON(w, http.StatusUnprocessableEntity, envelope{"error": err.Error(), "kind": kind.String()})
		return
	}
	app.putCart(r, c)
	app.writeJSON(w, http.StatusOK, envelope{"message": coupon.MsgApplied, "cart": newCartView(c)})
}

func (app *application) removeCoupon(w http.ResponseWriter, r *http.Request) {
	c := app.getCart(r)
	c.RemoveCoupon()
	app.putCart(r, c)
	app.writeJSON(w, http.StatusOK, envelope{"cart": newCartView(c)})
}

// --- CUSTOMER ORDER HANDLERS ---

func (app *application) checkout(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Address       models.Address `json:"address"`
		PaymentMethod string         `json:"paymentMethod"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	c := app.getCart(r)
	o, err := app.orders.Place(r.Context(), orders.PlaceRequest{
		UserID:        app.currentUserID(r),
		Cart:          c,
		Address:       input.Address,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		switch {
		case orders.IsValidation(err):
			app.errorJSON(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrInsufficientStock):
			app.errorJSON(w, http.StatusConflict, "Not enough stock for one or more items in your cart")
		case errors.Is(err, models.ErrNoRecord):
			app.errorJSON(w, http.StatusConflict, "A product in your cart is no longer available")
		default:
			app.serverError(w, r, err)
		}
		return
	}
	app.putCart(r, c)

	msg := notify.OrderRequestMessage(o, app.businessPhone)
	app.enqueue(msg)
	app.writeJSON(w, http.StatusCreated, envelope{"order": o, "confirmation": msg})
}

func (app *application) myOrders(w http.ResponseWriter, r *http.Request) {
	list, err := app.orders.ListForUser(r.Context(), app.currentUserID(r))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if list == nil {
		list = []models.Order{}
	}
	app.writeJSON(w, http.StatusOK, envelope{"orders": list})
}

func (app *application) showInvoice(w http.ResponseWriter, r *http.Request) {
	o, err := app.orders.Get(r.Context(), r.URL.Query().Get(":id"))
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, r, err)
		return
	}
	if !app.isAdmin(r) && o.UserID != app.currentUserID(r) {
		app.notFound(w)
		return
	}

	inv := invoice.Build(o)
	app.render(w, r, "invoice.page.tmpl", &TemplateData{Invoice: &inv})
}

// --- ADMIN HANDLERS ---

func (app *application) adminDashboard(w http.ResponseWriter, r *http.Request) {
	all, err := app.orders.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	products, err := app.store.GetAllProducts(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"stats": orders.Dashboard(all, products)})
}

func (app *application) adminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := app.store.GetAllProducts(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"products": products, "lowStock": catalog.LowStock(products)})
}

func (app *application) createProduct(w http.ResponseWriter, r *http.Request) {
	var input models.Product
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := catalog.Prepare(input)
	if err != nil {
		if catalog.IsValidation(err) {
			app.errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}
	if err := app.store.InsertProduct(r.Context(), p); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			app.errorJSON(w, http.StatusConflict, "A product with this id already exists")
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.logger.Info("product created", zap.String("product_id", p.ID), zap.String("name", p.Name))
	app.writeJSON(w, http.StatusCreated, envelope{"product": p})
}

// updateProduct overwrites the editable fields; ratings are kept.
func (app *application) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	existing, err := app.store.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, r, err)
		return
	}

	var input models.Product
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	input.ID = id
	input.Rating = existing.Rating
	input.ReviewCount = existing.ReviewCount

	p, err := catalog.Prepare(input)
	if err != nil {
		if catalog.IsValidation(err) {
			app.errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}
	if err := app.store.UpdateProduct(r.Context(), p); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"product": p})
}

func (app *application) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := app.store.DeleteProduct(r.Context(), r.URL.Query().Get(":id")); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) adminCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := app.store.GetAllCoupons(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"coupons": coupons})
}

func (app *application) createCoupon(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Code               string `json:"code"`
		DiscountPercentage int    `json:"discountPercentage"`
		ExpiryDate         string `json:"expiryDate"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := coupon.New(input.Code, input.DiscountPercentage, input.ExpiryDate)
	if err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.store.InsertCoupon(r.Context(), c); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			app.errorJSON(w, http.StatusConflict, "Coupon code already exists")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, envelope{"coupon": c})
}

func (app *application) deleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := app.store.DeleteCoupon(r.Context(), r.URL.Query().Get(":code")); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) updatePage(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(input.Title) == "" {
		app.errorJSON(w, http.StatusBadRequest, "Title is required")
		return
	}

	p := models.StaticPage{
		ID:          r.URL.Query().Get(":id"),
		Title:       strings.TrimSpace(input.Title),
		Content:     input.Content,
		LastUpdated: app.now().UTC(),
	}
	if err := app.store.UpsertPage(r.Context(), p); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"page": p})
}

func (app *application) deletePage(w http.ResponseWriter, r *http.Request) {
	if err := app.store.DeletePage(r.Context(), r.URL.Query().Get(":id")); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) adminOrders(w http.ResponseWriter, r *http.Request) {
	all, err := app.orders.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	qs := r.URL.Query()
	app.writeJSON(w, http.StatusOK, envelope{"orders": orders.Filter(all, qs.Get("status"), qs.Get("search"))})
}

// --- APPROVAL HANDLERS ---

type reviewView struct {
	OrderID         string             `json:"orderId"`
	VerifiedItems   []string           `json:"verifiedItems"`
	PaymentVerified bool               `json:"paymentVerified"`
	CanApprove      bool               `json:"canApprove"`
	Blockers        []approval.Blocker `json:"blockers"`
}

func newReviewView(o models.Order, rev approval.Review) reviewView {
	ids := make([]string, 0, len(rev.Verified))
	for id := range rev.Verified {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	blockers := rev.Blockers(o)
	if blockers == nil {
		blockers = []approval.Blocker{}
	}
	return reviewView{
		OrderID:         o.ID,
		VerifiedItems:   ids,
		PaymentVerified: rev.PaymentVerified,
		CanApprove:      rev.CanApprove(o),
		Blockers:        blockers,
	}
}

// reviewOrder loads the order named in the URL, writing the error response
// itself when it cannot.
func (app *application) reviewOrder(w http.ResponseWriter, r *http.Request) (models.Order, bool) {
	o, err := app.orders.Get(r.Context(), r.URL.Query().Get(":id"))
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return models.Order{}, false
		}
		app.serverError(w, r, err)
		return models.Order{}, false
	}
	return o, true
}

func (app *application) openReview(w http.ResponseWriter, r *http.Request) {
	o, ok := app.reviewOrder(w, r)
	if !ok {
		return
	}
	rev := approval.Open(o.ID)
	app.putReview(r, rev)
	app.writeJSON(w, http.StatusOK, envelope{"order": o, "review": newReviewView(o, rev)})
}

func (app *application) toggleReviewItem(w http.ResponseWriter, r *http.Request) {
	o, ok := app.reviewOrder(w, r)
	if !ok {
		return
	}
	item := r.URL.Query().Get(":item")
	found := false
	for _, line := range o.Items {
		if line.ID == item {
			found = true
			break
		}
	}
	if !found {
		app.errorJSON(w, http.StatusNotFound, "Item not in order")
		return
	}

	rev := app.getReview(r, o.ID)
	rev.ToggleItem(item)
	app.putReview(r, rev)
	app.writeJSON(w, http.StatusOK, envelope{"review": newReviewView(o, rev)})
}

func (app *application) verifyPayment(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Verified bool `json:"verified"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	o, ok := app.reviewOrder(w, r)
	if !ok {
		return
	}

	rev := app.getReview(r, o.ID)
	rev.SetPaymentVerified(input.Verified)
	app.putReview(r, rev)
	app.writeJSON(w, http.StatusOK, envelope{"review": newReviewView(o, rev)})
}

func (app *application) approveOrder(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Notes string `json:"notes"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.URL.Query().Get(":id")
	o, msg, err := app.orders.Approve(r.Context(), id, app.getReview(r, id), input.Notes)
	if err != nil {
		var gate *orders.GateError
		switch {
		case errors.Is(err, models.ErrNoRecord):
			app.notFound(w)
		case errors.Is(err, orders.ErrNotPending):
			app.errorJSON(w, http.StatusConflict, "Only pending orders can be approved")
		case errors.As(err, &gate):
			app.writeJSON(w, http.StatusConflict, envelope{"error": "Order is not ready for approval", "blockers": gate.Blockers})
		default:
			app.serverError(w, r, err)
		}
		return
	}

	app.session.Remove(r.Context(), sessionReview)
	app.writeJSON(w, http.StatusOK, envelope{"order": o, "notification": msg})
}

func (app *application) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := app.orders.Advance(r.Context(), r.URL.Query().Get(":id"), input.Status)
	if err != nil {
		switch {
		case orders.IsValidation(err):
			app.errorJSON(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrNoRecord):
			app.notFound(w)
		case errors.Is(err, orders.ErrApprovalRequired):
			app.errorJSON(w, http.StatusConflict, "Pending orders must be approved first")
		case errors.Is(err, orders.ErrInvalidTransition):
			app.errorJSON(w, http.StatusConflict, err.Error())
		default:
			app.serverError(w, r, err)
		}
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"order": o})
}

func (app *application) updateOrderNotes(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Notes string `json:"notes"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.URL.Query().Get(":id")
	if err := app.orders.UpdateNotes(r.Context(), id, input.Notes); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"orderId": id, "notes": strings.TrimSpace(input.Notes)})
}

func (app *application) addDefaultData(td *TemplateData) *TemplateData {
	if td == nil {
		td = &TemplateData{}
	}
	td.CurrentYear = app.now().Year()
	td.ShopName = notify.ShopName
	return td
}

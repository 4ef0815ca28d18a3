// Package orders runs an order from checkout to delivery: placement with its
// stock, cart and coupon side effects, the seller's approval, and the
// fulfilment steps that follow.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alhyra_organics/internal/approval"
	"alhyra_organics/internal/cart"
	"alhyra_organics/internal/metrics"
	"alhyra_organics/internal/models"
	"alhyra_organics/internal/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const GuestUserID = "guest"

const (
	PaymentMethodCOD = "cod"
	PaymentMethodUPI = "upi"
)

type Service struct {
	Store   models.Store
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Notify receives customer messages once an order is approved. It must
	// not block.
	Notify func(notify.Message)
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type PlaceRequest struct {
	UserID        string
	Cart          *cart.Cart
	Address       models.Address
	PaymentMethod string
}

func (r PlaceRequest) validate() error {
	if r.Cart == nil || r.Cart.IsEmpty() {
		return validationError{"Your cart is empty"}
	}
	for _, item := range r.Cart.Items {
		if item.Quantity < 1 || item.Quantity > cart.MaxQuantity {
			return validationError{fmt.Sprintf("Quantity for %s must be between 1 and %d", item.Name, cart.MaxQuantity)}
		}
	}
	a := r.Address
	for _, f := range []struct{ name, value string }{
		{"Full name", a.FullName},
		{"Phone", a.Phone},
		{"Street", a.Street},
		{"City", a.City},
		{"ZIP code", a.ZipCode},
	} {
		if strings.TrimSpace(f.value) == "" {
			return validationError{f.name + " is required"}
		}
	}
	if strings.TrimSpace(r.PaymentMethod) == "" {
		return validationError{"Choose a payment method"}
	}
	return nil
}

// PaymentStatusFor maps the checkout payment choice to the order's label.
// Cash on delivery is COD; every prepaid method, PaymentMethodUPI included,
// counts as Paid.
func PaymentStatusFor(method string) models.PaymentStatus {
	if strings.EqualFold(strings.TrimSpace(method), PaymentMethodCOD) {
		return models.PaymentCOD
	}
	return models.PaymentPaid
}

// NewOrderID returns "ORD-" followed by nine upper-case alphanumerics.
func NewOrderID() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
}

// Place turns the cart into a Pending order. Stock is taken and the cart
// and its coupon are cleared only when the order is stored; on any error
// all three are left untouched.
func (s *Service) Place(ctx context.Context, req PlaceRequest) (models.Order, error) {
	if err := req.validate(); err != nil {
		s.Metrics.OrderRejected("invalid")
		return models.Order{}, err
	}

	summary := req.Cart.Quote()
	userID := req.UserID
	if userID == "" {
		userID = GuestUserID
	}

	o := models.Order{
		UserID:         userID,
		Items:          req.Cart.Snapshot(),
		Subtotal:       summary.Subtotal,
		Shipping:       summary.Shipping,
		DiscountAmount: summary.Discount,
		TotalAmount:    summary.Total,
		PaymentStatus:  PaymentStatusFor(req.PaymentMethod),
		OrderStatus:    models.StatusPending,
		Address:        req.Address,
		CreatedAt:      s.now().UTC(),
	}
	if req.Cart.Coupon != nil {
		o.CouponCode = req.Cart.Coupon.Code
	}

	var err error
	for attempt := 0; attempt < 3; attempt++ {
		o.ID = NewOrderID()
		err = s.Store.PlaceOrder(ctx, o)
		if !errors.Is(err, models.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, models.ErrStockRestore) {
			s.Logger.Error("stock not restored after failed placement",
				zap.String("order_id", o.ID),
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
		switch {
		case errors.Is(err, models.ErrInvalidQuantity):
			s.Metrics.OrderRejected("invalid")
			return models.Order{}, validationError{"Every item needs a quantity of at least 1"}
		case errors.Is(err, models.ErrInsufficientStock):
			s.Metrics.OrderRejected("stock")
		case errors.Is(err, models.ErrNoRecord):
			s.Metrics.OrderRejected("unknown_product")
		default:
			s.Metrics.OrderRejected("store")
		}
		return models.Order{}, fmt.Errorf("place order: %w", err)
	}

	req.Cart.Clear()

	s.Metrics.OrderPlaced(string(o.PaymentStatus), o.TotalAmount.InexactFloat64())
	s.Logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("user_id", o.UserID),
		zap.Int("lines", len(o.Items)),
		zap.String("total", o.TotalAmount.String()),
		zap.String("payment", string(o.PaymentStatus)),
	)
	return o, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Order, error) {
	return s.Store.GetOrder(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	return s.Store.GetAllOrders(ctx)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.Store.GetOrdersByUser(ctx, userID)
}

// Approve confirms a Pending order once review has every item ticked and the
// payment verified, saves the seller's notes and queues the customer message.
func (s *Service) Approve(ctx context.Context, id string, review approval.Review, notes string) (models.Order, notify.Message, error) {
	o, err := s.Store.GetOrder(ctx, id)
	if err != nil {
		return models.Order{}, notify.Message{}, err
	}
	if o.OrderStatus != models.StatusPending {
		return models.Order{}, notify.Message{}, ErrNotPending
	}
	if review.OrderID != o.ID {
		return models.Order{}, notify.Message{}, &GateError{Blockers: approval.Open(o.ID).Blockers(o)}
	}
	if blockers := review.Blockers(o); len(blockers) > 0 {
		return models.Order{}, notify.Message{}, &GateError{Blockers: blockers}
	}

	notes = strings.TrimSpace(notes)
	err = s.Store.TransitionOrder(ctx, id, models.StatusPending, models.StatusConfirmed, &notes)
	if errors.Is(err, models.ErrStatusMismatch) {
		return models.Order{}, notify.Message{}, ErrNotPending
	}
	if err != nil {
		return models.Order{}, notify.Message{}, fmt.Errorf("approve order %s: %w", id, err)
	}

	o.OrderStatus = models.StatusConfirmed
	o.SellerNotes = notes
	msg := notify.ApprovalMessage(o, notes)
	if s.Notify != nil {
		s.Notify(msg)
	}

	s.Metrics.OrderApproved()
	s.Logger.Info("order approved", zap.String("order_id", o.ID), zap.Bool("has_notes", notes != ""))
	return o, msg, nil
}

// Advance moves a confirmed order one step along Confirmed, Packed, Shipped,
// Delivered. Skipping, going back, and leaving Pending are refused.
func (s *Service) Advance(ctx context.Context, id string, to models.OrderStatus) (models.Order, error) {
	if !to.Valid() {
		return models.Order{}, validationError{fmt.Sprintf("Unknown order status %q", to)}
	}
	o, err := s.Store.GetOrder(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if o.OrderStatus == models.StatusPending {
		return models.Order{}, ErrApprovalRequired
	}
	next, ok := o.OrderStatus.Next()
	if !ok || next != to {
		return models.Order{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.OrderStatus, to)
	}

	err = s.Store.TransitionOrder(ctx, id, o.OrderStatus, to, nil)
	if errors.Is(err, models.ErrStatusMismatch) {
		return models.Order{}, fmt.Errorf("%w: order %s changed while updating", ErrInvalidTransition, id)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("advance order %s: %w", id, err)
	}

	s.Metrics.StatusChanged(string(to))
	s.Logger.Info("order status changed",
		zap.String("order_id", id),
		zap.String("from", string(o.OrderStatus)),
		zap.String("to", string(to)),
	)
	o.OrderStatus = to
	return o, nil
}

func (s *Service) UpdateNotes(ctx context.Context, id, notes string) error {
	if err := s.Store.UpdateOrderNotes(ctx, id, strings.TrimSpace(notes)); err != nil {
		return fmt.Errorf("update notes for %s: %w", id, err)
	}
	return nil
}

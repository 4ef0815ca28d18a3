package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNoRecord          = errors.New("models: no matching record found")
	ErrDuplicate         = errors.New("models: duplicate record")
	ErrInsufficientStock = errors.New("models: insufficient stock")
	ErrStatusMismatch    = errors.New("models: order status changed")
	ErrInvalidQuantity   = errors.New("models: order line quantity must be positive")
	// ErrStockRestore marks stock that could not be put back after a failed
	// placement; the product's stock is now too low.
	ErrStockRestore = errors.New("models: stock restore failed")
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusConfirmed OrderStatus = "Confirmed"
	StatusPacked    OrderStatus = "Packed"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
)

// OrderStatuses lists the lifecycle in order.
var OrderStatuses = []OrderStatus{StatusPending, StatusConfirmed, StatusPacked, StatusShipped, StatusDelivered}

func (s OrderStatus) Valid() bool {
	return s.rank() >= 0
}

// Next returns the status that directly follows s, or false for the terminal one.
func (s OrderStatus) Next() (OrderStatus, bool) {
	i := s.rank()
	if i < 0 || i == len(OrderStatuses)-1 {
		return "", false
	}
	return OrderStatuses[i+1], true
}

func (s OrderStatus) rank() int {
	for i, st := range OrderStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
	PaymentCOD     PaymentStatus = "COD"
)

type User struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Role      Role      `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Product struct {
	ID               string          `bson:"_id" json:"id"`
	Name             string          `bson:"name" json:"name"`
	Description      string          `bson:"description" json:"description"`
	Image            string          `bson:"image" json:"image"`
	Category         string          `bson:"category" json:"category"`
	Weight           string          `bson:"weight" json:"weight"`
	Price            decimal.Decimal `bson:"price" json:"price"`
	Stock            int             `bson:"stock" json:"stock"`
	Ingredients      string          `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	NutritionalValue string          `bson:"nutritional_value,omitempty" json:"nutritionalValue,omitempty"`
	FSSAI            string          `bson:"fssai,omitempty" json:"fssai,omitempty"`
	Rating           float64         `bson:"rating" json:"rating"`
	ReviewCount      int             `bson:"review_count" json:"reviewCount"`
}

type Coupon struct {
	Code               string    `bson:"_id" json:"code"`
	DiscountPercentage int       `bson:"discount_percentage" json:"discountPercentage"`
	ExpiryDate         time.Time `bson:"expiry_date" json:"expiryDate"`
}

type Address struct {
	FullName string `bson:"full_name" json:"fullName"`
	Phone    string `bson:"phone" json:"phone"`
	Street   string `bson:"street" json:"street"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	ZipCode  string `bson:"zip_code" json:"zipCode"`
}

type Order struct {
	ID             string          `bson:"_id" json:"id"`
	UserID         string          `bson:"user_id" json:"userId"`
	Items          []CartItem      `bson:"items" json:"items"`
	Subtotal       decimal.Decimal `bson:"subtotal" json:"subtotal"`
	Shipping       decimal.Decimal `bson:"shipping" json:"shipping"`
	DiscountAmount decimal.Decimal `bson:"discount_amount" json:"discountAmount"`
	TotalAmount    decimal.Decimal `bson:"total_amount" json:"totalAmount"`
	CouponCode     string          `bson:"coupon_code,omitempty" json:"couponCode,omitempty"`
	PaymentStatus  PaymentStatus   `bson:"payment_status" json:"paymentStatus"`
	OrderStatus    OrderStatus     `bson:"order_status" json:"orderStatus"`
	SellerNotes    string          `bson:"seller_notes,omitempty" json:"sellerNotes,omitempty"`
	Address        Address         `bson:"address" json:"address"`
	CreatedAt      time.Time       `bson:"created_at" json:"createdAt"`
}

// Clone returns a copy that shares no memory with o.
func (o Order) Clone() Order {
	if o.Items != nil {
		o.Items = append([]CartItem(nil), o.Items...)
	}
	return o
}

type StaticPage struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Content     string    `bson:"content" json:"content"`
	LastUpdated time.Time `bson:"last_updated" json:"lastUpdated"`
}

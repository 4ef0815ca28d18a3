package models

import "context"

var (
	_ Store = (*MemoryDB)(nil)
	_ Store = (*MongoDB)(nil)
)

// Store is the persistence contract shared by the in-memory and Mongo
// backends. Returned values are copies.
type Store interface {
	GetProduct(ctx context.Context, id string) (Product, error)
	GetAllProducts(ctx context.Context) ([]Product, error)
	InsertProduct(ctx context.Context, p Product) error
	UpdateProduct(ctx context.Context, p Product) error
	DeleteProduct(ctx context.Context, id string) error
	// RateProduct folds one 1-5 star rating into the running average.
	RateProduct(ctx context.Context, id string, stars int) (Product, error)

	GetAllCoupons(ctx context.Context) ([]Coupon, error)
	InsertCoupon(ctx context.Context, c Coupon) error
	DeleteCoupon(ctx context.Context, code string) error

	// PlaceOrder inserts o and decrements stock for each line as one unit.
	// Nothing changes when any line asks for more than is in stock.
	PlaceOrder(ctx context.Context, o Order) error
	GetOrder(ctx context.Context, id string) (Order, error)
	GetAllOrders(ctx context.Context) ([]Order, error)
	GetOrdersByUser(ctx context.Context, userID string) ([]Order, error)
	// TransitionOrder moves the order from one status to another and
	// optionally replaces its seller notes. ErrStatusMismatch is returned
	// when the stored status is no longer from.
	TransitionOrder(ctx context.Context, id string, from, to OrderStatus, notes *string) error
	UpdateOrderNotes(ctx context.Context, id, notes string) error

	GetAllPages(ctx context.Context) ([]StaticPage, error)
	GetPage(ctx context.Context, id string) (StaticPage, error)
	UpsertPage(ctx context.Context, p StaticPage) error
	DeletePage(ctx context.Context, id string) error

	InsertUser(ctx context.Context, u User) error
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

// foldRating returns the new average and count after adding stars.
func foldRating(avg float64, count, stars int) (float64, int) {
	total := avg*float64(count) + float64(stars)
	count++
	return float64(int(total/float64(count)*10+0.5)) / 10, count
}

package models

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Products *mongo.Collection
	Coupons  *mongo.Collection
	Orders   *mongo.Collection
	Pages    *mongo.Collection
	Users    *mongo.Collection
}

// OpenMongo connects, pings and makes sure the indexes exist.
func OpenMongo(ctx context.Context, uri, database string) (*MongoDB, *mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetRegistry(NewRegistry()))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	m := &MongoDB{
		Products: db.Collection("products"),
		Coupons:  db.Collection("coupons"),
		Orders:   db.Collection("orders"),
		Pages:    db.Collection("pages"),
		Users:    db.Collection("users"),
	}

	_, err = m.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("create user index: %w", err)
	}
	_, err = m.Orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("create order index: %w", err)
	}

	return m, client, nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoRecord
	}
	return err
}

func duplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (m *MongoDB) GetProduct(ctx context.Context, id string) (Product, error) {
	var p Product
	err := m.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, notFound(err)
}

func (m *MongoDB) GetAllProducts(ctx context.Context) ([]Product, error) {
	products := []Product{}
	cur, err := m.Products.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	err = cur.All(ctx, &products)
	return products, err
}

func (m *MongoDB) InsertProduct(ctx context.Context, p Product) error {
	_, err := m.Products.InsertOne(ctx, p)
	return duplicate(err)
}

func (m *MongoDB) UpdateProduct(ctx context.Context, p Product) error {
	res, err := m.Products.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

func (m *MongoDB) DeleteProduct(ctx context.Context, id string) error {
	res, err := m.Products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

// RateProduct retries when another rating lands between the read and the write.
func (m *MongoDB) RateProduct(ctx context.Context, id string, stars int) (Product, error) {
	for attempt := 0; attempt < 5; attempt++ {
		p, err := m.GetProduct(ctx, id)
		if err != nil {
			return Product{}, err
		}
		rating, count := foldRating(p.Rating, p.ReviewCount, stars)
		res, err := m.Products.UpdateOne(ctx,
			bson.M{"_id": id, "review_count": p.ReviewCount},
			bson.M{"$set": bson.M{"rating": rating, "review_count": count}},
		)
		if err != nil {
			return Product{}, err
		}
		if res.MatchedCount == 1 {
			p.Rating, p.ReviewCount = rating, count
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("rate product %s: too much contention", id)
}

func (m *MongoDB) GetAllCoupons(ctx context.Context) ([]Coupon, error) {
	coupons := []Coupon{}
	cur, err := m.Coupons.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	err = cur.All(ctx, &coupons)
	return coupons, err
}

func (m *MongoDB) InsertCoupon(ctx context.Context, c Coupon) error {
	c.Code = strings.ToUpper(c.Code)
	_, err := m.Coupons.InsertOne(ctx, c)
	return duplicate(err)
}

func (m *MongoDB) DeleteCoupon(ctx context.Context, code string) error {
	res, err := m.Coupons.DeleteOne(ctx, bson.M{"_id": strings.ToUpper(code)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

// PlaceOrder decrements each product only while enough stock remains and
// rolls back the lines already taken if a later one, or the insert, fails.
func (m *MongoDB) PlaceOrder(ctx context.Context, o Order) error {
	want := make(map[string]int, len(o.Items))
	var ids []string
	for _, item := range o.Items {
		if item.Quantity <= 0 || item.Quantity > math.MaxInt-want[item.ID] {
			return ErrInvalidQuantity
		}
		if _, seen := want[item.ID]; !seen {
			ids = append(ids, item.ID)
		}
		want[item.ID] += item.Quantity
	}
	var taken []string
	fail := func(err error) error {
		if rerr := restoreStock(context.WithoutCancel(ctx), m.Products, taken, want); rerr != nil {
			return errors.Join(err, rerr)
		}
		return err
	}

	for _, id := range ids {
		res, err := m.Products.UpdateOne(ctx,
			bson.M{"_id": id, "stock": bson.M{"$gte": want[id]}},
			bson.M{"$inc": bson.M{"stock": -want[id]}},
		)
		if err != nil {
			return fail(err)
		}
		if res.MatchedCount == 0 {
			if _, err := m.GetProduct(ctx, id); errors.Is(err, ErrNoRecord) {
				return fail(ErrNoRecord)
			}
			return fail(ErrInsufficientStock)
		}
		taken = append(taken, id)
	}

	if _, err := m.Orders.InsertOne(ctx, o); err != nil {
		return fail(duplicate(err))
	}
	return nil
}

type stockUpdater interface {
	UpdateOne(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// restoreStock gives back the quantities already taken for ids. Every line
// is attempted; failures are returned together, each wrapping ErrStockRestore.
func restoreStock(ctx context.Context, products stockUpdater, ids []string, want map[string]int) error {
	var errs []error
	for _, id := range ids {
		res, err := products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"stock": want[id]}})
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%w: product %s, %d units: %w", ErrStockRestore, id, want[id], err))
		case res.MatchedCount == 0:
			errs = append(errs, fmt.Errorf("%w: product %s, %d units: product missing", ErrStockRestore, id, want[id]))
		}
	}
	return errors.Join(errs...)
}

func (m *MongoDB) GetOrder(ctx context.Context, id string) (Order, error) {
	var o Order
	err := m.Orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	return o, notFound(err)
}

func (m *MongoDB) GetAllOrders(ctx context.Context) ([]Order, error) {
	return m.findOrders(ctx, bson.M{})
}

func (m *MongoDB) GetOrdersByUser(ctx context.Context, userID string) ([]Order, error) {
	return m.findOrders(ctx, bson.M{"user_id": userID})
}

func (m *MongoDB) findOrders(ctx context.Context, filter bson.M) ([]Order, error) {
	var orders []Order
	cur, err := m.Orders.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	err = cur.All(ctx, &orders)
	return orders, err
}

func (m *MongoDB) TransitionOrder(ctx context.Context, id string, from, to OrderStatus, notes *string) error {
	set := bson.M{"order_status": to}
	if notes != nil {
		set["seller_notes"] = *notes
	}
	res, err := m.Orders.UpdateOne(ctx, bson.M{"_id": id, "order_status": from}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := m.GetOrder(ctx, id); err != nil {
			return err
		}
		return ErrStatusMismatch
	}
	return nil
}

func (m *MongoDB) UpdateOrderNotes(ctx context.Context, id, notes string) error {
	res, err := m.Orders.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"seller_notes": notes}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

func (m *MongoDB) GetAllPages(ctx context.Context) ([]StaticPage, error) {
	pages := []StaticPage{}
	cur, err := m.Pages.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	err = cur.All(ctx, &pages)
	return pages, err
}

func (m *MongoDB) GetPage(ctx context.Context, id string) (StaticPage, error) {
	var p StaticPage
	err := m.Pages.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, notFound(err)
}

func (m *MongoDB) UpsertPage(ctx context.Context, p StaticPage) error {
	_, err := m.Pages.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	return err
}

func (m *MongoDB) DeletePage(ctx context.Context, id string) error {
	res, err := m.Pages.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

func (m *MongoDB) InsertUser(ctx context.Context, u User) error {
	u.Email = strings.ToLower(u.Email)
	_, err := m.Users.InsertOne(ctx, u)
	return duplicate(err)
}

func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := m.Users.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	return u, notFound(err)
}

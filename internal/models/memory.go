package models

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
)

// MemoryDB keeps the whole shop in process. Every read hands back copies so
// callers can never reach into the maps.
type MemoryDB struct {
	mu       sync.RWMutex
	products map[string]Product
	// productOrder keeps catalog listing stable in insertion order.
	productOrder []string
	coupons      map[string]Coupon
	orders       []Order // newest first
	pages        map[string]StaticPage
	users        map[string]User // keyed by lower-cased email
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		products: make(map[string]Product),
		coupons:  make(map[string]Coupon),
		pages:    make(map[string]StaticPage),
		users:    make(map[string]User),
	}
}

func (m *MemoryDB) GetProduct(_ context.Context, id string) (Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return Product{}, ErrNoRecord
	}
	return p, nil
}

func (m *MemoryDB) GetAllProducts(_ context.Context) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	products := make([]Product, 0, len(m.productOrder))
	for _, id := range m.productOrder {
		products = append(products, m.products[id])
	}
	return products, nil
}

func (m *MemoryDB) InsertProduct(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; ok {
		return ErrDuplicate
	}
	m.products[p.ID] = p
	m.productOrder = append(m.productOrder, p.ID)
	return nil
}

func (m *MemoryDB) UpdateProduct(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return ErrNoRecord
	}
	m.products[p.ID] = p
	return nil
}

func (m *MemoryDB) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return ErrNoRecord
	}
	delete(m.products, id)
	for i, pid := range m.productOrder {
		if pid == id {
			m.productOrder = append(m.productOrder[:i:i], m.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryDB) RateProduct(_ context.Context, id string, stars int) (Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return Product{}, ErrNoRecord
	}
	p.Rating, p.ReviewCount = foldRating(p.Rating, p.ReviewCount, stars)
	m.products[id] = p
	return p, nil
}

func (m *MemoryDB) GetAllCoupons(_ context.Context) ([]Coupon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	coupons := make([]Coupon, 0, len(m.coupons))
	for _, c := range m.coupons {
		coupons = append(coupons, c)
	}
	sort.Slice(coupons, func(i, j int) bool { return coupons[i].Code < coupons[j].Code })
	return coupons, nil
}

func (m *MemoryDB) InsertCoupon(_ context.Context, c Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.Code = strings.ToUpper(c.Code)
	if _, ok := m.coupons[c.Code]; ok {
		return ErrDuplicate
	}
	m.coupons[c.Code] = c
	return nil
}

func (m *MemoryDB) DeleteCoupon(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToUpper(code)
	if _, ok := m.coupons[key]; !ok {
		return ErrNoRecord
	}
	delete(m.coupons, key)
	return nil
}

func (m *MemoryDB) PlaceOrder(_ context.Context, o Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.orderIndex(o.ID) >= 0 {
		return ErrDuplicate
	}

	// Sum per product first so repeated lines are checked against the total.
	want := make(map[string]int, len(o.Items))
	for _, item := range o.Items {
		if item.Quantity <= 0 || item.Quantity > math.MaxInt-want[item.ID] {
			return ErrInvalidQuantity
		}
		want[item.ID] += item.Quantity
	}
	for id, qty := range want {
		p, ok := m.products[id]
		if !ok {
			return ErrNoRecord
		}
		if p.Stock < qty {
			return ErrInsufficientStock
		}
	}

	for id, qty := range want {
		p := m.products[id]
		p.Stock -= qty
		m.products[id] = p
	}
	m.orders = append([]Order{o.Clone()}, m.orders...)
	return nil
}

func (m *MemoryDB) GetOrder(_ context.Context, id string) (Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.orderIndex(id)
	if i < 0 {
		return Order{}, ErrNoRecord
	}
	return m.orders[i].Clone(), nil
}

func (m *MemoryDB) GetAllOrders(_ context.Context) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := make([]Order, len(m.orders))
	for i, o := range m.orders {
		orders[i] = o.Clone()
	}
	return orders, nil
}

func (m *MemoryDB) GetOrdersByUser(_ context.Context, userID string) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var orders []Order
	for _, o := range m.orders {
		if o.UserID == userID {
			orders = append(orders, o.Clone())
		}
	}
	return orders, nil
}

func (m *MemoryDB) TransitionOrder(_ context.Context, id string, from, to OrderStatus, notes *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.orderIndex(id)
	if i < 0 {
		return ErrNoRecord
	}
	if m.orders[i].OrderStatus != from {
		return ErrStatusMismatch
	}
	m.orders[i].OrderStatus = to
	if notes != nil {
		m.orders[i].SellerNotes = *notes
	}
	return nil
}

func (m *MemoryDB) UpdateOrderNotes(_ context.Context, id, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.orderIndex(id)
	if i < 0 {
		return ErrNoRecord
	}
	m.orders[i].SellerNotes = notes
	return nil
}

func (m *MemoryDB) orderIndex(id string) int {
	for i, o := range m.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func (m *MemoryDB) GetAllPages(_ context.Context) ([]StaticPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pages := make([]StaticPage, 0, len(m.pages))
	for _, p := range m.pages {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].ID < pages[j].ID })
	return pages, nil
}

func (m *MemoryDB) GetPage(_ context.Context, id string) (StaticPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pages[id]
	if !ok {
		return StaticPage{}, ErrNoRecord
	}
	return p, nil
}

func (m *MemoryDB) UpsertPage(_ context.Context, p StaticPage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[p.ID] = p
	return nil
}

func (m *MemoryDB) DeletePage(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[id]; !ok {
		return ErrNoRecord
	}
	delete(m.pages, id)
	return nil
}

func (m *MemoryDB) InsertUser(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := m.users[key]; ok {
		return ErrDuplicate
	}
	m.users[key] = u
	return nil
}

func (m *MemoryDB) GetUserByEmail(_ context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return User{}, ErrNoRecord
	}
	return u, nil
}

// Package catalog answers the storefront's product questions: search,
// category filters, sorting and what is running low.
package catalog

import (
	"errors"
	"sort"
	"strings"

	"alhyra_organics/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AllCategories = "All"

	SortDefault   = ""
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"

	LowStockThreshold = 10
)

type Query struct {
	Search   string
	Category string
	Sort     string
}

// Filter returns the products matching q in a new slice. Search matches the
// product name without regard to case; the default sort keeps catalog order.
func Filter(products []models.Product, q Query) []models.Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if q.Category != "" && q.Category != AllCategories && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	}
	return out
}

// Categories lists distinct categories in first-seen order, led by "All".
func Categories(products []models.Product) []string {
	seen := map[string]bool{}
	out := []string{AllCategories}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func LowStock(products []models.Product) []models.Product {
	var out []models.Product
	for _, p := range products {
		if p.Stock < LowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

var (
	ErrNameRequired  = errors.New("Product name is required")
	ErrPricePositive = errors.New("Price must be greater than zero")
	ErrStockNegative = errors.New("Stock cannot be negative")
	ErrRatingRange   = errors.New("Rating must be between 1 and 5")

	ErrPriceWhole          = errors.New("Price must be in whole rupees")
	ErrAverageRating       = errors.New("Average rating must be between 0 and 5")
	ErrReviewCountNegative = errors.New("Review count cannot be negative")
)

// Prepare validates an admin-submitted product and gives it an id if it
// has none. Prices are whole rupees, like every amount the cart computes.
func Prepare(p models.Product) (models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return p, ErrNameRequired
	}
	if !p.Price.GreaterThan(decimal.Zero) {
		return p, ErrPricePositive
	}
	if !p.Price.Equal(p.Price.Truncate(0)) {
		return p, ErrPriceWhole
	}
	if p.Stock < 0 {
		return p, ErrStockNegative
	}
	if !(p.Rating >= 0 && p.Rating <= 5) {
		return p, ErrAverageRating
	}
	if p.ReviewCount < 0 {
		return p, ErrReviewCountNegative
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return p, nil
}

func ValidRating(stars int) error {
	if stars < 1 || stars > 5 {
		return ErrRatingRange
	}
	return nil
}

// IsValidation reports whether err came from product validation.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrNameRequired, ErrPricePositive, ErrPriceWhole, ErrStockNegative,
		ErrRatingRange, ErrAverageRating, ErrReviewCountNegative,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

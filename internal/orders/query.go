package orders

import (
	"strings"

	"alhyra_organics/internal/catalog"
	"alhyra_organics/internal/models"

	"github.com/shopspring/decimal"
)

const AllStatuses = "All"

// Filter keeps orders in the given status ("" or All for any) whose id or
// customer name contains search, ignoring case.
func Filter(orders []models.Order, status, search string) []models.Order {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && status != AllStatuses && string(o.OrderStatus) != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(o.ID), search) &&
			!strings.Contains(strings.ToLower(o.Address.FullName), search) {
			continue
		}
		out = append(out, o)
	}
	return out
}

type Stats struct {
	TotalOrders      int              `json:"totalOrders"`
	PendingApprovals int              `json:"pendingApprovals"`
	Revenue          decimal.Decimal  `json:"revenue"`
	ActiveProducts   int              `json:"activeProducts"`
	LowStock         []models.Product `json:"lowStock"`
	RecentOrders     []models.Order   `json:"recentOrders"`
}

// Dashboard summarises the shop. Revenue counts Paid orders only.
func Dashboard(orders []models.Order, products []models.Product) Stats {
	st := Stats{
		TotalOrders:    len(orders),
		Revenue:        decimal.Zero,
		ActiveProducts: len(products),
		LowStock:       catalog.LowStock(products),
	}
	for _, o := range orders {
		if o.OrderStatus == models.StatusPending {
			st.PendingApprovals++
		}
		if o.PaymentStatus == models.PaymentPaid {
			st.Revenue = st.Revenue.Add(o.TotalAmount)
		}
	}
	// orders arrive newest first
	st.RecentOrders = orders[:min(5, len(orders))]
	return st
}

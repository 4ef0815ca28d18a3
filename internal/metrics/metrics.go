// Package metrics exposes Prometheus counters for the order flow. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "alhyra"

type Metrics struct {
	registry *prometheus.Registry

	OrdersPlaced      *prometheus.CounterVec
	OrdersRejected    *prometheus.CounterVec
	OrdersApproved    prometheus.Counter
	StatusChanges     *prometheus.CounterVec
	CouponsRejected   *prometheus.CounterVec
	Revenue           prometheus.Counter
	HTTPRequests      *prometheus.CounterVec
	HTTPRequestTiming prometheus.Histogram
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		OrdersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Orders placed, by payment status.",
		}, []string{"payment"}),
		OrdersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "rejected_total",
			Help:      "Checkout attempts refused, by reason.",
		}, []string{"reason"}),
		OrdersApproved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "approved_total",
			Help:      "Orders approved by the seller.",
		}),
		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "status_changes_total",
			Help:      "Order status transitions, by target status.",
		}, []string{"status"}),
		CouponsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coupons",
			Name:      "rejected_total",
			Help:      "Coupon applications refused, by kind.",
		}, []string{"kind"}),
		Revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "placed_amount_rupees_total",
			Help:      "Sum of order totals at placement.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests, by method and status code.",
		}, []string{"method", "code"}),
		HTTPRequestTiming: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		m.OrdersPlaced, m.OrdersRejected, m.OrdersApproved, m.StatusChanges,
		m.CouponsRejected, m.Revenue, m.HTTPRequests, m.HTTPRequestTiming,
	)
	return m
}

func (m *Metrics) OrderPlaced(payment string, total float64) {
	if m == nil {
		return
	}
	m.OrdersPlaced.WithLabelValues(payment).Inc()
	m.Revenue.Add(total)
}

func (m *Metrics) OrderRejected(reason string) {
	if m == nil {
		return
	}
	m.OrdersRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) OrderApproved() {
	if m == nil {
		return
	}
	m.OrdersApproved.Inc()
	m.StatusChanges.WithLabelValues("Confirmed").Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.StatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) CouponRejected(kind string) {
	if m == nil {
		return
	}
	m.CouponsRejected.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveRequest(method string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.HTTPRequestTiming.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

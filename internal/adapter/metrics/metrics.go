package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	Queries         *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	MembersJoined   prometheus.Counter
	OrdersPlaced    prometheus.Counter
	OrdersCancelled prometheus.Counter
}

// New creates the metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Queries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ordersystem_db_queries_total",
			Help: "Statements sent to the store, by store and kind",
		}, []string{"store", "kind"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ordersystem_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ordersystem_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		MembersJoined: f.NewCounter(prometheus.CounterOpts{
			Name: "ordersystem_members_joined_total",
			Help: "Members registered",
		}),
		OrdersPlaced: f.NewCounter(prometheus.CounterOpts{
			Name: "ordersystem_orders_placed_total",
			Help: "Orders placed",
		}),
		OrdersCancelled: f.NewCounter(prometheus.CounterOpts{
			Name: "ordersystem_orders_cancelled_total",
			Help: "Orders cancelled",
		}),
	}
}

// ObserveQuery counts one statement. Safe on a nil receiver.
func (m *Metrics) ObserveQuery(store, kind string) {
	if m == nil {
		return
	}
	m.Queries.WithLabelValues(store, kind).Inc()
}

func (m *Metrics) MemberJoined() {
	if m != nil {
		m.MembersJoined.Inc()
	}
}

func (m *Metrics) OrderPlaced() {
	if m != nil {
		m.OrdersPlaced.Inc()
	}
}

func (m *Metrics) OrderCancelled() {
	if m != nil {
		m.OrdersCancelled.Inc()
	}
}

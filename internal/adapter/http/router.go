package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/logger"
	"github.com/YelzhanWeb/ordersystem/internal/adapter/metrics"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

type Services struct {
	Members interfaces.MemberService
	Items   interfaces.ItemService
	Orders  interfaces.OrderService
}

// NewRouter mounts the /api routes and the /metrics endpoint.
func NewRouter(svc Services, m *metrics.Metrics, gatherer prometheus.Gatherer, log logger.Logger) http.Handler {
	members := NewMemberHandler(svc.Members, log)
	items := NewItemHandler(svc.Items, log)
	orders := NewOrderHandler(svc.Orders, log)

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(RecoveryMiddleware(log))
	r.Use(LoggingMiddleware(log))
	r.Use(MetricsMiddleware(m))

	r.Route("/api", func(r chi.Router) {
		r.Post("/members", members.Join)
		r.Get("/members", members.List)
		r.Put("/members/{id}", members.Update)

		r.Post("/items", items.Create)
		r.Get("/items", items.List)

		r.Post("/orders", orders.Place)
		r.Get("/orders", orders.List)
		r.Get("/orders/{id}", orders.Get)
		r.Post("/orders/{id}/cancel", orders.Cancel)
		r.Get("/simple-orders", orders.ListSummaries)
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

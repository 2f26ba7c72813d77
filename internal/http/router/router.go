package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-courier-tracking/internal/http/handlers"
	mw "service-courier-tracking/internal/http/middleware"
	"service-courier-tracking/internal/http/middleware/ratelimit"
	"service-courier-tracking/internal/logx"
)

const requestTimeout = 5 * time.Second

// Deps are the handlers and middleware the router mounts.
// WS, Auth and RateLimit may be nil.
type Deps struct {
	Base      *handlers.Handlers
	Couriers  *handlers.CourierHandler
	Locations *handlers.LocationHandler
	Orders    *handlers.OrderHandler
	WS        http.Handler
	Auth      func(http.Handler) http.Handler
	RateLimit *ratelimit.Middleware
	Metrics   mw.HTTPMetrics
	Logger    logx.Logger
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logx.Nop()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.Observability(d.Logger, d.Metrics))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	// Websocket connections outlive the request timeout, so /ws stays
	// outside the timeout group. Authentication happens in the first frame.
	if d.WS != nil {
		r.Get("/ws", d.WS.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		if d.Auth != nil {
			r.Use(d.Auth)
		}
		if d.RateLimit != nil {
			r.Use(d.RateLimit.WithKey(ratelimit.ByUser).Handler())
		}

		r.Route("/couriers", func(r chi.Router) {
			r.Get("/", d.Couriers.List)
			r.Post("/", d.Couriers.Create)
			r.Patch("/me", d.Couriers.Update)
			r.Delete("/me", d.Couriers.Deactivate)
			r.Put("/me/online", d.Couriers.SetOnline)
			r.Post("/me/location", d.Locations.Update)
			r.Get("/{id}", d.Couriers.GetByID)
		})

		r.Route("/orders/{id}", func(r chi.Router) {
			r.Post("/dispatch", d.Orders.Dispatch)
			r.Get("/candidates", d.Orders.Candidates)
			r.Put("/status", d.Orders.UpdateStatus)
			r.Get("/tracking", d.Orders.Track)
		})
	})

	return r
}

package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"delivery-relay/internal/http/handlers"
	relaymw "delivery-relay/internal/http/middleware"
	"delivery-relay/internal/http/middleware/ratelimit"
	"delivery-relay/internal/http/pprofserver"
	"delivery-relay/internal/logx"
)

// requestTimeout covers a full confirm: re-poll, assignment call and re-fetch.
const requestTimeout = 20 * time.Second

// New constructs the relay http.Handler with base middleware and routes.
// rl may be nil.
func New(
	logger logx.Logger,
	rl *ratelimit.Middleware,
	debug pprofserver.Config,
	h *handlers.Handlers,
	orders *handlers.OrderHandler,
	assign *handlers.AssignmentHandler,
	quotes *handlers.QuoteHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(relaymw.Observability(logger))
	r.Use(middleware.Recoverer)

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	pprofserver.Mount(r, debug)

	r.Group(func(r chi.Router) {
		if rl != nil {
			r.Use(rl.Handler())
		}
		r.Use(middleware.Timeout(requestTimeout))

		r.Route("/orders/{id}", func(r chi.Router) {
			r.Get("/", orders.Get)
			r.Get("/assignment", orders.Plan)
			r.Post("/assignment/session", assign.Open)
			r.Post("/actions/{action}", orders.Act)
		})

		r.Route("/assignment/sessions/{sid}", func(r chi.Router) {
			r.Get("/", assign.Get)
			r.Delete("/", assign.Close)
			r.Put("/pickup", assign.SelectPickup)
			r.Put("/delivery", assign.SelectDelivery)
			r.Put("/details", assign.SetDetails)
			r.Post("/quote", assign.Quote)
			r.Post("/confirm", assign.Confirm)
		})

		r.Post("/quotes/estimate", quotes.Estimate)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

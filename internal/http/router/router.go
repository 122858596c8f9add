package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tech-assigner/internal/http/handlers"
	mw "tech-assigner/internal/http/middleware"
	"tech-assigner/internal/http/middleware/ratelimit"
	"tech-assigner/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
// The console API sits behind bearer auth; health and metrics do not.
func New(
	logger logx.Logger,
	h *handlers.Handlers,
	console *handlers.ConsoleHandler,
	audit *handlers.AuditHandler,
	rl *ratelimit.Middleware,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(mw.Observability(logger))
	if rl != nil {
		r.Use(rl.Handler())
	}

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/console", func(r chi.Router) {
		r.Use(mw.Auth(logger))
		r.Get("/work-items", console.WorkItems)
		r.Get("/delivery-agents", console.Agents)
		r.Post("/assignments", console.Assign)
		r.Put("/assignments/{kind}/{id}", console.Reassign)
		r.Get("/audit", audit.List)
	})

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}

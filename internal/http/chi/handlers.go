package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/webhook-scheduler/scheduler"
	"github.com/marcelsud/webhook-scheduler/webhook"
	"github.com/rs/zerolog"
)

// Schedule is the view of the scheduler shown on the dashboard
type Schedule interface {
	Enabled() bool
	Entries() []scheduler.Entry
}

// Handlers sets up the dashboard and API routes.
// schedule and metricsHandler may be nil.
func Handlers(ctx context.Context, webhookService webhook.UseCase, schedule Schedule, metricsHandler http.Handler, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	// Reads are bounded; triggers may run up to the target timeout
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Method(http.MethodGet, "/", getDashboard(webhookService, schedule, logger))
		r.Method(http.MethodGet, "/api/data", getData(webhookService, logger))
		r.Method(http.MethodGet, "/api/latest", getLatest(webhookService, logger))
		r.Method(http.MethodDelete, "/api/clear", deleteHistory(webhookService, logger))
	})

	r.Route("/api/trigger", func(r chi.Router) {
		r.Method(http.MethodPost, "/", postTrigger(webhookService.TriggerPrimary, logger))
		r.Method(http.MethodPost, "/secondary", postTrigger(webhookService.TriggerSecondary, logger))
		// legacy name of the secondary channel
		r.Method(http.MethodPost, "/weixin", postTrigger(webhookService.TriggerSecondary, logger))
	})

	return r
}

package stub

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Store     *Store
	JWTSecret string
	Env       string
	Version   string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health and metrics endpoints
	health := NewHealthHandler(cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Handle("/metrics", promhttp.Handler())

	// Login endpoint, the only unauthenticated API surface
	r.Post("/token", tokenHandler(cfg.Store, cfg.JWTSecret))

	// Portal endpoints behind bearer auth
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return requireAuth(cfg.JWTSecret, next)
		})

		r.Post("/patients/register", registerPatientHandler(cfg.Store))
		r.Get("/patients", listPatientsHandler(cfg.Store))
		r.Post("/appointments/book", bookAppointmentHandler(cfg.Store))
		r.Get("/appointments/{id}", getAppointmentHandler(cfg.Store))
		r.Get("/dashboard/stats", dashboardStatsHandler(cfg.Store))
	})

	return r
}

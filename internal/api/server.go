package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/resumesavvy/interview-agent/internal/api/docs"
	interviewapi "github.com/resumesavvy/interview-agent/internal/api/interview"
	"github.com/resumesavvy/interview-agent/internal/api/middleware"
	sttapi "github.com/resumesavvy/interview-agent/internal/api/stt"
	"github.com/resumesavvy/interview-agent/internal/metrics"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(interviewHandler *interviewapi.Handler, sttHandler *sttapi.Handler, m *metrics.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)   // Recover from panics
	r.Use(chimiddleware.RequestID)   // Add request ID
	r.Use(middleware.Logger(logger)) // Log requests
	r.Use(middleware.CORS)           // Handle CORS

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", m.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// REST routes get the default timeout; the websocket relay is registered
	// outside the group because its sessions outlive any request deadline.
	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		interviewapi.RegisterRoutes(r, interviewHandler)
	})

	sttapi.RegisterRoutes(r, sttHandler)

	return r
}

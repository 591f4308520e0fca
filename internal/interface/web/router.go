package web

import (
	"net/http"
	"time"

	"flightdesk-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all HTTP routes
func NewRouter(h *Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/", h.Home)
	r.Get("/login", h.Login)
	r.Get("/callback", h.Callback)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/book", h.BookForm)
	r.Post("/book", h.Book)
	r.Get("/checkin", h.CheckInForm)
	r.Post("/checkin", h.CheckIn)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug("Request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"requestId", chimiddleware.GetReqID(r.Context()),
				"duration", time.Since(start).String(),
			)
		})
	}
}

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/showtimehq/movie-booking/internal/observability"
	"github.com/showtimehq/movie-booking/internal/rateLimit"
)

func SetupRouter(h *Handlers, logger observability.Logger, rl *rateLimit.RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(logger))
	r.Use(TracingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(RateLimitMiddleware(rl))

	r.Get("/", h.Root)
	r.Get("/test", h.TestStore)
	r.Post("/movies", h.CreateMovie)
	r.Post("/movies/upload", h.UploadMovie)
	r.Get("/movies", h.ListMovies)
	r.Post("/theaters", h.CreateTheater)
	r.Get("/theaters", h.ListTheaters)
	r.Post("/showtimes", h.CreateShowtime)
	r.Get("/showtimes", h.ListShowtimes)
	r.Post("/bookings", h.CreateBooking)
	r.Get("/bookings", h.ListBookings)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

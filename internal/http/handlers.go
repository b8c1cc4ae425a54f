package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/showtimehq/movie-booking/internal/booking"
	"github.com/showtimehq/movie-booking/internal/catalog"
	"github.com/showtimehq/movie-booking/internal/config"
	"github.com/showtimehq/movie-booking/internal/domain"
	"github.com/showtimehq/movie-booking/internal/idempotency"
	"github.com/showtimehq/movie-booking/internal/observability"
)

type MovieStore interface {
	Insert(ctx context.Context, movie *domain.Movie) (domain.MovieID, error)
	List(ctx context.Context) ([]domain.Movie, error)
	Exists(ctx context.Context, id domain.MovieID) (bool, error)
}

type TheaterStore interface {
	Insert(ctx context.Context, theater *domain.Theater) (domain.TheaterID, error)
	List(ctx context.Context) ([]domain.Theater, error)
	Exists(ctx context.Context, id domain.TheaterID) (bool, error)
}

type ShowtimeStore interface {
	Insert(ctx context.Context, showtime *domain.Showtime) (domain.ShowtimeID, error)
	List(ctx context.Context) ([]domain.Showtime, error)
}

type BookingStore interface {
	List(ctx context.Context) ([]domain.Booking, error)
}

type Diagnostics interface {
	Ping(ctx context.Context) error
	Collections(ctx context.Context) ([]string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, msg amqp.Publishing) error
}

type AuditSink interface {
	LogBooking(ctx context.Context, booking domain.Booking) error
}

type Handlers struct {
	cfg       *config.Config
	logger    observability.Logger
	movies    MovieStore
	theaters  TheaterStore
	showtimes ShowtimeStore
	bookings  BookingStore
	booker    *booking.Service
	resolver  *catalog.Resolver
	diag      Diagnostics
	events    EventPublisher
	audit     AuditSink
	idemp     *idempotency.Idempotency
}

func NewHandlers(
	cfg *config.Config,
	logger observability.Logger,
	movies MovieStore,
	theaters TheaterStore,
	showtimes ShowtimeStore,
	bookings BookingStore,
	booker *booking.Service,
	resolver *catalog.Resolver,
	diag Diagnostics,
	events EventPublisher,
	audit AuditSink,
	idemp *idempotency.Idempotency,
) *Handlers {
	return &Handlers{
		cfg:       cfg,
		logger:    logger,
		movies:    movies,
		theaters:  theaters,
		showtimes: showtimes,
		bookings:  bookings,
		booker:    booker,
		resolver:  resolver,
		diag:      diag,
		events:    events,
		audit:     audit,
		idemp:     idemp,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Movie Booking Backend Ready"})
}

func (h *Handlers) TestStore(w http.ResponseWriter, r *http.Request) {
	flag := func(set bool) string {
		if set {
			return "set"
		}
		return "not set"
	}

	resp := map[string]interface{}{
		"backend":           "running",
		"database":          "not available",
		"database_url":      flag(h.cfg.MongoURI != ""),
		"database_name":     flag(h.cfg.DatabaseName != ""),
		"connection_status": "not connected",
		"collections":       []string{},
	}

	if err := h.diag.Ping(r.Context()); err != nil {
		resp["database"] = "error: " + err.Error()
	} else {
		resp["database"] = "available"
		resp["connection_status"] = "connected"
		if cols, err := h.diag.Collections(r.Context()); err != nil {
			resp["database"] = "connected but error: " + err.Error()
		} else {
			resp["database"] = "connected"
			resp["collections"] = cols
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req domain.NewMovie
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.insertMovie(w, r, req)
}

// UploadMovie accepts a multipart form with an optional binary poster and
// stores the poster as a data URL, same shape as a JSON create.
func (h *Handlers) UploadMovie(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := domain.NewMovie{Title: r.FormValue("title")}
	if v := r.FormValue("description"); v != "" {
		req.Description = &v
	}
	if v := r.FormValue("duration_minutes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "duration_minutes must be an integer", http.StatusBadRequest)
			return
		}
		req.DurationMinutes = &n
	}

	file, header, err := r.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err == nil {
		defer file.Close()
		content, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mime := header.Header.Get("Content-Type")
		if mime == "" {
			mime = "image/png"
		}
		dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(content)
		req.PosterImage = &dataURL
	}

	h.insertMovie(w, r, req)
}

func (h *Handlers) insertMovie(w http.ResponseWriter, r *http.Request, req domain.NewMovie) {
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	movie := &domain.Movie{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PosterImage:     req.PosterImage,
	}
	id, err := h.movies.Insert(r.Context(), movie)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handlers) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movies.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	writeJSON(w, http.StatusOK, movies)
}

func (h *Handlers) CreateTheater(w http.ResponseWriter, r *http.Request) {
	var req domain.NewTheater
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	theater := &domain.Theater{Name: req.Name, Location: req.Location}
	id, err := h.theaters.Insert(r.Context(), theater)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handlers) ListTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := h.theaters.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if theaters == nil {
		theaters = []domain.Theater{}
	}
	writeJSON(w, http.StatusOK, theaters)
}

func (h *Handlers) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req domain.NewShowtime
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	movieID, err := domain.ParseMovieID(req.MovieID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	theaterID, err := domain.ParseTheaterID(req.TheaterID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// References are checked once here, never re-checked afterwards.
	movieOK, err := h.movies.Exists(r.Context(), movieID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	theaterOK, err := h.theaters.Exists(r.Context(), theaterID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !movieOK || !theaterOK {
		http.Error(w, "Invalid movie_id or theater_id", http.StatusBadRequest)
		return
	}

	seatsAvailable := req.TotalSeats
	if req.SeatsAvailable != nil {
		seatsAvailable = *req.SeatsAvailable
	}

	showtime := &domain.Showtime{
		MovieID:        movieID,
		TheaterID:      theaterID,
		StartTime:      req.StartTime,
		TotalSeats:     req.TotalSeats,
		SeatsAvailable: seatsAvailable,
	}
	id, err := h.showtimes.Insert(r.Context(), showtime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handlers) ListShowtimes(w http.ResponseWriter, r *http.Request) {
	showtimes, err := h.showtimes.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.resolver.ExpandShowtimes(r.Context(), showtimes))
}

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("Idempotency-Key")
	existing, err := h.idemp.Get(r.Context(), key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if existing != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(existing.Status)
		w.Write(existing.Result)
		return
	}

	var req domain.NewBooking
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	booked, err := h.booker.Create(r.Context(), req)
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "Showtime not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, domain.ErrConflict) {
		http.Error(w, "Not enough seats available", http.StatusConflict)
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.publishBookingCreated(r.Context(), *booked)
	if h.audit != nil {
		_ = h.audit.LogBooking(r.Context(), *booked)
	}

	data, _ := json.Marshal(map[string]string{"id": booked.ID.String()})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(data)

	h.idemp.Set(r.Context(), key, idempotency.Response{Status: http.StatusCreated, Result: data})
}

func (h *Handlers) publishBookingCreated(ctx context.Context, booked domain.Booking) {
	if h.events == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"booking_id":  booked.ID.String(),
		"showtime_id": booked.ShowtimeID.String(),
		"seats":       booked.Seats,
	})
	msg := amqp.Publishing{
		MessageId:   uuid.New().String(),
		ContentType: "application/json",
		Body:        payload,
	}
	if err := h.events.Publish(ctx, "booking.created", msg); err != nil {
		h.logger.Error("failed to publish booking.created", err)
	}
}

func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.resolver.ExpandBookings(r.Context(), bookings))
}

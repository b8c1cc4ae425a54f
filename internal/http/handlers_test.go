package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/showtimehq/movie-booking/internal/booking"
	"github.com/showtimehq/movie-booking/internal/catalog"
	"github.com/showtimehq/movie-booking/internal/config"
	"github.com/showtimehq/movie-booking/internal/domain"
	httphandler "github.com/showtimehq/movie-booking/internal/http"
	"github.com/showtimehq/movie-booking/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memMovies struct {
	docs map[domain.MovieID]domain.Movie
}

func (m *memMovies) Insert(ctx context.Context, movie *domain.Movie) (domain.MovieID, error) {
	id := domain.MovieID(primitive.NewObjectID())
	movie.ID = id
	m.docs[id] = *movie
	return id, nil
}

func (m *memMovies) List(ctx context.Context) ([]domain.Movie, error) {
	var out []domain.Movie
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (m *memMovies) Exists(ctx context.Context, id domain.MovieID) (bool, error) {
	_, ok := m.docs[id]
	return ok, nil
}

func (m *memMovies) Get(ctx context.Context, id domain.MovieID) (*domain.Movie, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

type memTheaters struct {
	docs map[domain.TheaterID]domain.Theater
}

func (m *memTheaters) Insert(ctx context.Context, theater *domain.Theater) (domain.TheaterID, error) {
	id := domain.TheaterID(primitive.NewObjectID())
	theater.ID = id
	m.docs[id] = *theater
	return id, nil
}

func (m *memTheaters) List(ctx context.Context) ([]domain.Theater, error) {
	var out []domain.Theater
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (m *memTheaters) Exists(ctx context.Context, id domain.TheaterID) (bool, error) {
	_, ok := m.docs[id]
	return ok, nil
}

func (m *memTheaters) Get(ctx context.Context, id domain.TheaterID) (*domain.Theater, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

type memShowtimes struct {
	docs map[domain.ShowtimeID]domain.Showtime
}

func (m *memShowtimes) Insert(ctx context.Context, showtime *domain.Showtime) (domain.ShowtimeID, error) {
	id := domain.ShowtimeID(primitive.NewObjectID())
	showtime.ID = id
	m.docs[id] = *showtime
	return id, nil
}

func (m *memShowtimes) List(ctx context.Context) ([]domain.Showtime, error) {
	var out []domain.Showtime
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (m *memShowtimes) Get(ctx context.Context, id domain.ShowtimeID) (*domain.Showtime, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *memShowtimes) DecrementSeats(ctx context.Context, id domain.ShowtimeID, n int) error {
	doc, ok := m.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.SeatsAvailable -= n
	m.docs[id] = doc
	return nil
}

type memBookings struct {
	docs map[domain.BookingID]domain.Booking
}

func (m *memBookings) Insert(ctx context.Context, b *domain.Booking) (domain.BookingID, error) {
	id := domain.BookingID(primitive.NewObjectID())
	b.ID = id
	m.docs[id] = *b
	return id, nil
}

func (m *memBookings) List(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	return out, nil
}

type memDiag struct{}

func (memDiag) Ping(ctx context.Context) error { return nil }

func (memDiag) Collections(ctx context.Context) ([]string, error) {
	return []string{"movie"}, nil
}

type env struct {
	router    *chi.Mux
	movies    *memMovies
	theaters  *memTheaters
	showtimes *memShowtimes
	bookings  *memBookings
}

func newEnv(t *testing.T) *env {
	t.Helper()

	movies := &memMovies{docs: map[domain.MovieID]domain.Movie{}}
	theaters := &memTheaters{docs: map[domain.TheaterID]domain.Theater{}}
	showtimes := &memShowtimes{docs: map[domain.ShowtimeID]domain.Showtime{}}
	bookings := &memBookings{docs: map[domain.BookingID]domain.Booking{}}

	logger := observability.NewLogger()
	cfg := &config.Config{MongoURI: "mongodb://localhost", DatabaseName: "test"}

	booker := booking.NewService(showtimes, bookings, logger)
	resolver := catalog.NewResolver(movies, theaters, showtimes, logger)
	handlers := httphandler.NewHandlers(cfg, logger, movies, theaters, showtimes, bookings, booker, resolver, memDiag{}, nil, nil, nil)

	return &env{
		router:    httphandler.SetupRouter(handlers, logger, nil),
		movies:    movies,
		theaters:  theaters,
		showtimes: showtimes,
		bookings:  bookings,
	}
}

func (e *env) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func createdID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestRoot(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Movie Booking Backend Ready")
}

func TestStoreDiagnostic(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "connected", resp["database"])
	assert.Equal(t, "connected", resp["connection_status"])
	assert.Equal(t, "set", resp["database_url"])
}

func TestCreateAndListMovies(t *testing.T) {
	e := newEnv(t)

	id := createdID(t, e.do(t, http.MethodPost, "/movies", `{"title":"Dune"}`))
	_, err := domain.ParseMovieID(id)
	require.NoError(t, err)

	rec := e.do(t, http.MethodGet, "/movies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var movies []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, id, movies[0]["id"])
	assert.Equal(t, "Dune", movies[0]["title"])
}

func TestCreateMovieValidation(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/movies", `{"description":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title is required")
}

func TestCreateShowtimeDefaultsAvailability(t *testing.T) {
	e := newEnv(t)
	movieID := createdID(t, e.do(t, http.MethodPost, "/movies", `{"title":"Dune"}`))
	theaterID := createdID(t, e.do(t, http.MethodPost, "/theaters", `{"name":"Grand","location":"Downtown"}`))

	rec := e.do(t, http.MethodPost, "/showtimes",
		`{"movie_id":"`+movieID+`","theater_id":"`+theaterID+`","start_time":"2025-01-01T18:00:00Z","total_seats":100}`)
	showtimeID := createdID(t, rec)

	parsed, err := domain.ParseShowtimeID(showtimeID)
	require.NoError(t, err)
	st := e.showtimes.docs[parsed]
	assert.Equal(t, 100, st.TotalSeats)
	assert.Equal(t, 100, st.SeatsAvailable)
}

func TestCreateShowtimeUnknownReferences(t *testing.T) {
	e := newEnv(t)
	movieID := primitive.NewObjectID().Hex()
	theaterID := primitive.NewObjectID().Hex()

	rec := e.do(t, http.MethodPost, "/showtimes",
		`{"movie_id":"`+movieID+`","theater_id":"`+theaterID+`","start_time":"2025-01-01T18:00:00Z","total_seats":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid movie_id or theater_id")
	assert.Empty(t, e.showtimes.docs)
}

func TestCreateShowtimeMalformedID(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/showtimes",
		`{"movie_id":"garbage","theater_id":"garbage","start_time":"2025-01-01T18:00:00Z","total_seats":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid ID format")
}

func TestListShowtimesExpandsReferences(t *testing.T) {
	e := newEnv(t)
	movieID := createdID(t, e.do(t, http.MethodPost, "/movies", `{"title":"Dune"}`))
	theaterID := createdID(t, e.do(t, http.MethodPost, "/theaters", `{"name":"Grand","location":"Downtown"}`))
	createdID(t, e.do(t, http.MethodPost, "/showtimes",
		`{"movie_id":"`+movieID+`","theater_id":"`+theaterID+`","start_time":"2025-01-01T18:00:00Z","total_seats":100}`))

	rec := e.do(t, http.MethodGet, "/showtimes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var views []struct {
		MovieTitle      *string `json:"movie_title"`
		TheaterName     *string `json:"theater_name"`
		TheaterLocation *string `json:"theater_location"`
		SeatsAvailable  int     `json:"seats_available"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	require.NotNil(t, views[0].MovieTitle)
	assert.Equal(t, "Dune", *views[0].MovieTitle)
	require.NotNil(t, views[0].TheaterName)
	assert.Equal(t, "Grand", *views[0].TheaterName)
	require.NotNil(t, views[0].TheaterLocation)
	assert.Equal(t, "Downtown", *views[0].TheaterLocation)
}

func TestBookingLifecycle(t *testing.T) {
	e := newEnv(t)
	movieID := createdID(t, e.do(t, http.MethodPost, "/movies", `{"title":"Dune"}`))
	theaterID := createdID(t, e.do(t, http.MethodPost, "/theaters", `{"name":"Grand","location":"Downtown"}`))
	showtimeID := createdID(t, e.do(t, http.MethodPost, "/showtimes",
		`{"movie_id":"`+movieID+`","theater_id":"`+theaterID+`","start_time":"2025-01-01T18:00:00Z","total_seats":100}`))

	// Successful booking decrements availability.
	createdID(t, e.do(t, http.MethodPost, "/bookings",
		`{"showtime_id":"`+showtimeID+`","customer_name":"Alice","seats":30}`))

	parsed, err := domain.ParseShowtimeID(showtimeID)
	require.NoError(t, err)
	assert.Equal(t, 70, e.showtimes.docs[parsed].SeatsAvailable)

	// Overbooking is rejected and leaves availability untouched.
	rec := e.do(t, http.MethodPost, "/bookings",
		`{"showtime_id":"`+showtimeID+`","customer_name":"Bob","seats":200}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not enough seats available")
	assert.Equal(t, 70, e.showtimes.docs[parsed].SeatsAvailable)
	assert.Len(t, e.bookings.docs, 1)

	// Listing expands through the showtime to movie and theater.
	rec = e.do(t, http.MethodGet, "/bookings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var views []struct {
		CustomerName string  `json:"customer_name"`
		Seats        int     `json:"seats"`
		MovieTitle   *string `json:"movie_title"`
		TheaterName  *string `json:"theater_name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Alice", views[0].CustomerName)
	assert.Equal(t, 30, views[0].Seats)
	require.NotNil(t, views[0].MovieTitle)
	assert.Equal(t, "Dune", *views[0].MovieTitle)
}

func TestBookingErrorStatuses(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/bookings",
		`{"showtime_id":"`+primitive.NewObjectID().Hex()+`","customer_name":"Alice","seats":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Showtime not found")

	rec = e.do(t, http.MethodPost, "/bookings",
		`{"showtime_id":"`+primitive.NewObjectID().Hex()+`","customer_name":"Alice","seats":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Seats must be greater than 0")

	rec = e.do(t, http.MethodPost, "/bookings",
		`{"showtime_id":"garbage","customer_name":"Alice","seats":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid ID format")
}

func TestListEndpointsDoNotMutate(t *testing.T) {
	e := newEnv(t)
	movieID := createdID(t, e.do(t, http.MethodPost, "/movies", `{"title":"Dune"}`))
	theaterID := createdID(t, e.do(t, http.MethodPost, "/theaters", `{"name":"Grand","location":"Downtown"}`))
	createdID(t, e.do(t, http.MethodPost, "/showtimes",
		`{"movie_id":"`+movieID+`","theater_id":"`+theaterID+`","start_time":"2025-01-01T18:00:00Z","total_seats":50}`))

	first := e.do(t, http.MethodGet, "/showtimes", "").Body.String()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, e.do(t, http.MethodGet, "/showtimes", "").Body.String())
	}
}

func TestUploadMovie(t *testing.T) {
	e := newEnv(t)

	body := &strings.Builder{}
	boundary := "testboundary"
	body.WriteString("--" + boundary + "\r\n")
	body.WriteString("Content-Disposition: form-data; name=\"title\"\r\n\r\nDune\r\n")
	body.WriteString("--" + boundary + "\r\n")
	body.WriteString("Content-Disposition: form-data; name=\"duration_minutes\"\r\n\r\n155\r\n")
	body.WriteString("--" + boundary + "\r\n")
	body.WriteString("Content-Disposition: form-data; name=\"image\"; filename=\"poster.png\"\r\n")
	body.WriteString("Content-Type: image/png\r\n\r\nPNGDATA\r\n")
	body.WriteString("--" + boundary + "--\r\n")

	req := httptest.NewRequest(http.MethodPost, "/movies/upload", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	id := createdID(t, rec)
	parsed, err := domain.ParseMovieID(id)
	require.NoError(t, err)

	movie := e.movies.docs[parsed]
	assert.Equal(t, "Dune", movie.Title)
	require.NotNil(t, movie.DurationMinutes)
	assert.Equal(t, 155, *movie.DurationMinutes)
	require.NotNil(t, movie.PosterImage)
	assert.True(t, strings.HasPrefix(*movie.PosterImage, "data:image/png;base64,"))
}

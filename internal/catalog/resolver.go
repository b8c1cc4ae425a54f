package catalog

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/showtimehq/movie-booking/internal/domain"
	"github.com/showtimehq/movie-booking/internal/observability"
)

type MovieSource interface {
	Get(ctx context.Context, id domain.MovieID) (*domain.Movie, error)
}

type TheaterSource interface {
	Get(ctx context.Context, id domain.TheaterID) (*domain.Theater, error)
}

type ShowtimeSource interface {
	Get(ctx context.Context, id domain.ShowtimeID) (*domain.Showtime, error)
}

// Resolver inlines display fields of referenced entities into list responses.
// Lookups run one at a time; each request stays sequential end to end.
type Resolver struct {
	movies    MovieSource
	theaters  TheaterSource
	showtimes ShowtimeSource
	logger    observability.Logger
}

func NewResolver(movies MovieSource, theaters TheaterSource, showtimes ShowtimeSource, logger observability.Logger) *Resolver {
	return &Resolver{movies: movies, theaters: theaters, showtimes: showtimes, logger: logger}
}

// ExpandShowtimes attaches movie title and theater name/location to each
// showtime. A dangling reference leaves the expanded fields nil.
func (r *Resolver) ExpandShowtimes(ctx context.Context, showtimes []domain.Showtime) []ShowtimeView {
	views := make([]ShowtimeView, 0, len(showtimes))
	for _, st := range showtimes {
		view := ShowtimeView{
			ID:             st.ID,
			MovieID:        st.MovieID,
			TheaterID:      st.TheaterID,
			StartTime:      st.StartTime,
			TotalSeats:     st.TotalSeats,
			SeatsAvailable: st.SeatsAvailable,
		}
		if movie := r.lookupMovie(ctx, st.MovieID); movie != nil {
			view.MovieTitle = &movie.Title
		}
		if theater := r.lookupTheater(ctx, st.TheaterID); theater != nil {
			view.TheaterName = &theater.Name
			view.TheaterLocation = &theater.Location
		}
		views = append(views, view)
	}
	return views
}

// ExpandBookings resolves each booking's showtime and, through it, the movie
// and theater display fields. Two hops; any missing link leaves nils.
func (r *Resolver) ExpandBookings(ctx context.Context, bookings []domain.Booking) []BookingView {
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		view := BookingView{
			ID:           b.ID,
			ShowtimeID:   b.ShowtimeID,
			CustomerName: b.CustomerName,
			Seats:        b.Seats,
			CreatedAt:    b.CreatedAt,
			UpdatedAt:    b.UpdatedAt,
		}
		showtime, err := r.showtimes.Get(ctx, b.ShowtimeID)
		if err != nil {
			r.warnDangling(err, "showtime", b.ShowtimeID.String())
			views = append(views, view)
			continue
		}
		if movie := r.lookupMovie(ctx, showtime.MovieID); movie != nil {
			view.MovieTitle = &movie.Title
		}
		if theater := r.lookupTheater(ctx, showtime.TheaterID); theater != nil {
			view.TheaterName = &theater.Name
		}
		views = append(views, view)
	}
	return views
}

func (r *Resolver) lookupMovie(ctx context.Context, id domain.MovieID) *domain.Movie {
	movie, err := r.movies.Get(ctx, id)
	if err != nil {
		r.warnDangling(err, "movie", id.String())
		return nil
	}
	return movie
}

func (r *Resolver) lookupTheater(ctx context.Context, id domain.TheaterID) *domain.Theater {
	theater, err := r.theaters.Get(ctx, id)
	if err != nil {
		r.warnDangling(err, "theater", id.String())
		return nil
	}
	return theater
}

func (r *Resolver) warnDangling(err error, kind, id string) {
	if errors.Is(err, domain.ErrNotFound) {
		r.logger.WithField(kind+"_id", id).Warn("dangling " + kind + " reference")
		return
	}
	r.logger.WithField(kind+"_id", id).Error("failed to resolve "+kind+" reference", err)
}

package booking

import (
	"context"
	"time"

	"github.com/showtimehq/movie-booking/internal/domain"
	"github.com/showtimehq/movie-booking/internal/observability"
)

type ShowtimeStore interface {
	Get(ctx context.Context, id domain.ShowtimeID) (*domain.Showtime, error)
	DecrementSeats(ctx context.Context, id domain.ShowtimeID, n int) error
}

type BookingStore interface {
	Insert(ctx context.Context, booking *domain.Booking) (domain.BookingID, error)
}

// Service runs the booking transaction: validate, resolve the showtime, check
// availability, insert the booking, decrement the showtime's seats.
type Service struct {
	showtimes ShowtimeStore
	bookings  BookingStore
	logger    observability.Logger
}

func NewService(showtimes ShowtimeStore, bookings BookingStore, logger observability.Logger) *Service {
	return &Service{showtimes: showtimes, bookings: bookings, logger: logger}
}

// Create books seats on a showtime. Any failure before the booking insert
// aborts with no write at all. The two writes are not covered by a store
// transaction, so a crash between them leaves a booking whose seats were
// never deducted; that gap is a documented limitation of this design.
func (s *Service) Create(ctx context.Context, req domain.NewBooking) (*domain.Booking, error) {
	start := time.Now()
	defer func() {
		observability.BookingTxDuration.Observe(time.Since(start).Seconds())
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	showtimeID, err := domain.ParseShowtimeID(req.ShowtimeID)
	if err != nil {
		return nil, err
	}

	showtime, err := s.showtimes.Get(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	if req.Seats > showtime.SeatsAvailable {
		observability.BookingConflicts.Inc()
		return nil, domain.ErrConflict
	}

	booking := &domain.Booking{
		ShowtimeID:   showtimeID,
		CustomerName: req.CustomerName,
		Seats:        req.Seats,
	}
	if _, err := s.bookings.Insert(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.showtimes.DecrementSeats(ctx, showtimeID, req.Seats); err != nil {
		// The booking document already exists at this point. Surface the
		// error; reconciliation is out of scope.
		s.logger.WithField("booking_id", booking.ID.String()).Error("seat decrement failed after booking insert", err)
		return nil, err
	}

	observability.BookingsTotal.Inc()
	return booking, nil
}

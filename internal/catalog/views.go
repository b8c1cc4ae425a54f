package catalog

import (
	"time"

	"github.com/showtimehq/movie-booking/internal/domain"
)

// Client-facing list shapes. Expanded reference fields are pointers; a
// dangling reference renders as null rather than failing the read.

type ShowtimeView struct {
	ID              domain.ShowtimeID `json:"id"`
	MovieID         domain.MovieID    `json:"movie_id"`
	TheaterID       domain.TheaterID  `json:"theater_id"`
	StartTime       time.Time         `json:"start_time"`
	TotalSeats      int               `json:"total_seats"`
	SeatsAvailable  int               `json:"seats_available"`
	MovieTitle      *string           `json:"movie_title"`
	TheaterName     *string           `json:"theater_name"`
	TheaterLocation *string           `json:"theater_location"`
}

type BookingView struct {
	ID           domain.BookingID  `json:"id"`
	ShowtimeID   domain.ShowtimeID `json:"showtime_id"`
	CustomerName string            `json:"customer_name"`
	Seats        int               `json:"seats"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	MovieTitle   *string           `json:"movie_title"`
	TheaterName  *string           `json:"theater_name"`
}

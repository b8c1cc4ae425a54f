package domain

import (
	"strings"
	"time"
)

// Create payloads as the client sends them. Reference ids stay strings here;
// they are parsed into typed ids after validation.

type NewMovie struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes"`
	PosterImage     *string `json:"poster_image"`
}

func (m NewMovie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return Invalid("title is required")
	}
	if m.DurationMinutes != nil && *m.DurationMinutes < 1 {
		return Invalid("duration_minutes must be at least 1")
	}
	return nil
}

type NewTheater struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (t NewTheater) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return Invalid("name is required")
	}
	if strings.TrimSpace(t.Location) == "" {
		return Invalid("location is required")
	}
	return nil
}

type NewShowtime struct {
	MovieID        string    `json:"movie_id"`
	TheaterID      string    `json:"theater_id"`
	StartTime      time.Time `json:"start_time"`
	TotalSeats     int       `json:"total_seats"`
	SeatsAvailable *int      `json:"seats_available"`
}

func (s NewShowtime) Validate() error {
	if s.MovieID == "" {
		return Invalid("movie_id is required")
	}
	if s.TheaterID == "" {
		return Invalid("theater_id is required")
	}
	if s.StartTime.IsZero() {
		return Invalid("start_time is required")
	}
	if s.TotalSeats < 1 {
		return Invalid("total_seats must be at least 1")
	}
	if s.SeatsAvailable != nil && *s.SeatsAvailable < 0 {
		return Invalid("seats_available must not be negative")
	}
	return nil
}

type NewBooking struct {
	ShowtimeID   string `json:"showtime_id"`
	CustomerName string `json:"customer_name"`
	Seats        int    `json:"seats"`
}

func (b NewBooking) Validate() error {
	if b.ShowtimeID == "" {
		return Invalid("showtime_id is required")
	}
	if strings.TrimSpace(b.CustomerName) == "" {
		return Invalid("customer_name is required")
	}
	if b.Seats <= 0 {
		return Invalid("Seats must be greater than 0")
	}
	return nil
}

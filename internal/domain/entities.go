package domain

import "time"

// Persisted documents. Optional fields are pointers so a document missing a
// field decodes as nil instead of failing the read.

type Movie struct {
	ID              MovieID   `bson:"_id,omitempty" json:"id"`
	Title           string    `bson:"title" json:"title"`
	Description     *string   `bson:"description,omitempty" json:"description"`
	DurationMinutes *int      `bson:"duration_minutes,omitempty" json:"duration_minutes"`
	PosterImage     *string   `bson:"poster_image,omitempty" json:"poster_image"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

type Theater struct {
	ID        TheaterID `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Location  string    `bson:"location" json:"location"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Showtime keeps the invariant 0 <= SeatsAvailable <= TotalSeats after
// creation. Only the booking transaction mutates SeatsAvailable.
type Showtime struct {
	ID             ShowtimeID `bson:"_id,omitempty" json:"id"`
	MovieID        MovieID    `bson:"movie_id" json:"movie_id"`
	TheaterID      TheaterID  `bson:"theater_id" json:"theater_id"`
	StartTime      time.Time  `bson:"start_time" json:"start_time"`
	TotalSeats     int        `bson:"total_seats" json:"total_seats"`
	SeatsAvailable int        `bson:"seats_available" json:"seats_available"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updated_at"`
}

type Booking struct {
	ID           BookingID  `bson:"_id,omitempty" json:"id"`
	ShowtimeID   ShowtimeID `bson:"showtime_id" json:"showtime_id"`
	CustomerName string     `bson:"customer_name" json:"customer_name"`
	Seats        int        `bson:"seats" json:"seats"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}

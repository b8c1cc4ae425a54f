package mongo

import (
	"context"

	"github.com/showtimehq/movie-booking/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store groups the per-collection repositories over a single database handle.
// It is passed around explicitly; there is no package-level connection.
type Store struct {
	db *mongo.Database

	Movies    *MovieRepository
	Theaters  *TheaterRepository
	Showtimes *ShowtimeRepository
	Bookings  *BookingRepository
}

func NewStore(db *mongo.Database, logger observability.Logger) *Store {
	return &Store{
		db:        db,
		Movies:    NewMovieRepository(db, logger),
		Theaters:  NewTheaterRepository(db, logger),
		Showtimes: NewShowtimeRepository(db, logger),
		Bookings:  NewBookingRepository(db, logger),
	}
}

func (s *Store) Name() string {
	return s.db.Name()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *Store) Collections(ctx context.Context) ([]string, error) {
	return s.db.ListCollectionNames(ctx, bson.M{})
}

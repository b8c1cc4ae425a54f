package mongo

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/showtimehq/movie-booking/internal/domain"
	"github.com/showtimehq/movie-booking/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewBookingRepository(db *mongo.Database, logger observability.Logger) *BookingRepository {
	return &BookingRepository{
		coll:   db.Collection("booking"),
		logger: logger,
	}
}

func (r *BookingRepository) Insert(ctx context.Context, booking *domain.Booking) (domain.BookingID, error) {
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		r.logger.Error("failed to insert booking", err)
		return domain.BookingID{}, errors.Wrap(err, "insert booking")
	}
	id := domain.BookingID(res.InsertedID.(primitive.ObjectID))
	booking.ID = id
	return id, nil
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}
	var bookings []domain.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, errors.Wrap(err, "decode bookings")
	}
	return bookings, nil
}

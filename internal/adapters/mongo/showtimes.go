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

type ShowtimeRepository struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewShowtimeRepository(db *mongo.Database, logger observability.Logger) *ShowtimeRepository {
	return &ShowtimeRepository{
		coll:   db.Collection("showtime"),
		logger: logger,
	}
}

func (r *ShowtimeRepository) Insert(ctx context.Context, showtime *domain.Showtime) (domain.ShowtimeID, error) {
	now := time.Now().UTC()
	showtime.CreatedAt = now
	showtime.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, showtime)
	if err != nil {
		r.logger.Error("failed to insert showtime", err)
		return domain.ShowtimeID{}, errors.Wrap(err, "insert showtime")
	}
	id := domain.ShowtimeID(res.InsertedID.(primitive.ObjectID))
	showtime.ID = id
	return id, nil
}

func (r *ShowtimeRepository) List(ctx context.Context) ([]domain.Showtime, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list showtimes")
	}
	var showtimes []domain.Showtime
	if err := cur.All(ctx, &showtimes); err != nil {
		return nil, errors.Wrap(err, "decode showtimes")
	}
	return showtimes, nil
}

func (r *ShowtimeRepository) Get(ctx context.Context, id domain.ShowtimeID) (*domain.Showtime, error) {
	var showtime domain.Showtime
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&showtime)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get showtime")
	}
	return &showtime, nil
}

// DecrementSeats applies the availability decrement as a single $inc so
// concurrent decrements on the same showtime are linearized by the store.
// TODO: guard the filter with seats_available >= n so two bookings that both
// passed the availability check cannot oversell the showtime.
func (r *ShowtimeRepository) DecrementSeats(ctx context.Context, id domain.ShowtimeID, n int) error {
	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"seats_available": -n},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		r.logger.Error("failed to decrement seats", err)
		return errors.Wrap(err, "decrement seats")
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

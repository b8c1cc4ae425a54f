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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TheaterRepository struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewTheaterRepository(db *mongo.Database, logger observability.Logger) *TheaterRepository {
	return &TheaterRepository{
		coll:   db.Collection("theater"),
		logger: logger,
	}
}

func (r *TheaterRepository) Insert(ctx context.Context, theater *domain.Theater) (domain.TheaterID, error) {
	now := time.Now().UTC()
	theater.CreatedAt = now
	theater.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, theater)
	if err != nil {
		r.logger.Error("failed to insert theater", err)
		return domain.TheaterID{}, errors.Wrap(err, "insert theater")
	}
	id := domain.TheaterID(res.InsertedID.(primitive.ObjectID))
	theater.ID = id
	return id, nil
}

func (r *TheaterRepository) List(ctx context.Context) ([]domain.Theater, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list theaters")
	}
	var theaters []domain.Theater
	if err := cur.All(ctx, &theaters); err != nil {
		return nil, errors.Wrap(err, "decode theaters")
	}
	return theaters, nil
}

func (r *TheaterRepository) Get(ctx context.Context, id domain.TheaterID) (*domain.Theater, error) {
	var theater domain.Theater
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&theater)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get theater")
	}
	return &theater, nil
}

func (r *TheaterRepository) Exists(ctx context.Context, id domain.TheaterID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "count theaters")
	}
	return n > 0, nil
}

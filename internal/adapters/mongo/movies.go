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

type MovieRepository struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewMovieRepository(db *mongo.Database, logger observability.Logger) *MovieRepository {
	return &MovieRepository{
		coll:   db.Collection("movie"),
		logger: logger,
	}
}

func (r *MovieRepository) Insert(ctx context.Context, movie *domain.Movie) (domain.MovieID, error) {
	now := time.Now().UTC()
	movie.CreatedAt = now
	movie.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, movie)
	if err != nil {
		r.logger.Error("failed to insert movie", err)
		return domain.MovieID{}, errors.Wrap(err, "insert movie")
	}
	id := domain.MovieID(res.InsertedID.(primitive.ObjectID))
	movie.ID = id
	return id, nil
}

func (r *MovieRepository) List(ctx context.Context) ([]domain.Movie, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list movies")
	}
	var movies []domain.Movie
	if err := cur.All(ctx, &movies); err != nil {
		return nil, errors.Wrap(err, "decode movies")
	}
	return movies, nil
}

func (r *MovieRepository) Get(ctx context.Context, id domain.MovieID) (*domain.Movie, error) {
	var movie domain.Movie
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&movie)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get movie")
	}
	return &movie, nil
}

func (r *MovieRepository) Exists(ctx context.Context, id domain.MovieID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "count movies")
	}
	return n > 0, nil
}

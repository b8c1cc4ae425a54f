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

// AuditLogger records write actions in a side collection. Best effort: callers
// log failures and move on, an audit miss never fails the request.
type AuditLogger struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewAuditLogger(db *mongo.Database, logger observability.Logger) *AuditLogger {
	return &AuditLogger{
		coll:   db.Collection("audit_log"),
		logger: logger,
	}
}

type AuditRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Action    string             `bson:"action"`
	Timestamp time.Time          `bson:"timestamp"`
	Data      bson.M             `bson:"data"`
}

func (a *AuditLogger) LogAction(ctx context.Context, action string, data map[string]interface{}) error {
	rec := AuditRecord{
		Action:    action,
		Timestamp: time.Now().UTC(),
		Data:      bson.M(data),
	}
	if _, err := a.coll.InsertOne(ctx, rec); err != nil {
		a.logger.Error("failed to insert audit record", err)
		return errors.Wrap(err, "insert audit record")
	}
	return nil
}

func (a *AuditLogger) LogBooking(ctx context.Context, booking domain.Booking) error {
	data := map[string]interface{}{
		"booking_id":    booking.ID.String(),
		"showtime_id":   booking.ShowtimeID.String(),
		"customer_name": booking.CustomerName,
		"seats":         booking.Seats,
	}
	return a.LogAction(ctx, "booking.created", data)
}

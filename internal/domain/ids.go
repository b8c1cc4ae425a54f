package domain

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Each entity kind gets its own identifier type so a MovieID can never be
// handed to a lookup that expects a ShowtimeID. All of them are ObjectIDs on
// the wire: hex strings in JSON, native ObjectIDs in BSON.

type MovieID primitive.ObjectID

type TheaterID primitive.ObjectID

type ShowtimeID primitive.ObjectID

type BookingID primitive.ObjectID

func ParseMovieID(s string) (MovieID, error) {
	oid, err := parseObjectID(s)
	return MovieID(oid), err
}

func ParseTheaterID(s string) (TheaterID, error) {
	oid, err := parseObjectID(s)
	return TheaterID(oid), err
}

func ParseShowtimeID(s string) (ShowtimeID, error) {
	oid, err := parseObjectID(s)
	return ShowtimeID(oid), err
}

func ParseBookingID(s string) (BookingID, error) {
	oid, err := parseObjectID(s)
	return BookingID(oid), err
}

func parseObjectID(s string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, Invalid("Invalid ID format")
	}
	return oid, nil
}

func (id MovieID) String() string { return primitive.ObjectID(id).Hex() }

func (id MovieID) IsZero() bool { return primitive.ObjectID(id).IsZero() }

func (id MovieID) MarshalJSON() ([]byte, error) { return json.Marshal(id.String()) }

func (id *MovieID) UnmarshalJSON(data []byte) error {
	return unmarshalIDJSON(data, (*primitive.ObjectID)(id))
}

func (id MovieID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

func (id *MovieID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return bson.UnmarshalValue(t, data, (*primitive.ObjectID)(id))
}

func (id TheaterID) String() string { return primitive.ObjectID(id).Hex() }

func (id TheaterID) IsZero() bool { return primitive.ObjectID(id).IsZero() }

func (id TheaterID) MarshalJSON() ([]byte, error) { return json.Marshal(id.String()) }

func (id *TheaterID) UnmarshalJSON(data []byte) error {
	return unmarshalIDJSON(data, (*primitive.ObjectID)(id))
}

func (id TheaterID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

func (id *TheaterID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return bson.UnmarshalValue(t, data, (*primitive.ObjectID)(id))
}

func (id ShowtimeID) String() string { return primitive.ObjectID(id).Hex() }

func (id ShowtimeID) IsZero() bool { return primitive.ObjectID(id).IsZero() }

func (id ShowtimeID) MarshalJSON() ([]byte, error) { return json.Marshal(id.String()) }

func (id *ShowtimeID) UnmarshalJSON(data []byte) error {
	return unmarshalIDJSON(data, (*primitive.ObjectID)(id))
}

func (id ShowtimeID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

func (id *ShowtimeID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return bson.UnmarshalValue(t, data, (*primitive.ObjectID)(id))
}

func (id BookingID) String() string { return primitive.ObjectID(id).Hex() }

func (id BookingID) IsZero() bool { return primitive.ObjectID(id).IsZero() }

func (id BookingID) MarshalJSON() ([]byte, error) { return json.Marshal(id.String()) }

func (id *BookingID) UnmarshalJSON(data []byte) error {
	return unmarshalIDJSON(data, (*primitive.ObjectID)(id))
}

func (id BookingID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

func (id *BookingID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return bson.UnmarshalValue(t, data, (*primitive.ObjectID)(id))
}

func unmarshalIDJSON(data []byte, out *primitive.ObjectID) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	oid, err := parseObjectID(s)
	if err != nil {
		return err
	}
	*out = oid
	return nil
}

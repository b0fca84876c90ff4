package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
)

const tripsCollection = "trips"

// TripRepository extends the generic store with atomic seat accounting.
type TripRepository struct {
	*Store[domain.Trip, *domain.Trip]
	col *mongo.Collection
}

func NewTripRepository(db *mongo.Database) *TripRepository {
	return &TripRepository{
		Store: NewStore[domain.Trip](db, tripsCollection, "name", "status"),
		col:   db.Collection(tripsCollection),
	}
}

// AdjustSeats atomically shifts seatsBooked by delta. The filter keeps
// the result inside [0, capacity] so two concurrent bookings can never
// oversell a trip.
func (r *TripRepository) AdjustSeats(ctx context.Context, id string, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id": id,
		"$expr": bson.M{"$and": bson.A{
			bson.M{"$lte": bson.A{bson.M{"$add": bson.A{"$seatsBooked", delta}}, "$capacity"}},
			bson.M{"$gte": bson.A{bson.M{"$add": bson.A{"$seatsBooked", delta}}, 0}},
		}},
	}
	update := bson.M{
		"$inc": bson.M{"seatsBooked": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing trip from an out-of-capacity one.
		if _, ferr := r.FindByID(ctx, id); ferr != nil {
			if errors.Is(ferr, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return ferr
		}
		return domain.ErrNoSeats
	}
	return nil
}

// FILE: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (repo *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on booking ID.
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index backing conflict listings (provider + date +
		// status, range-scanned on start).
		{
			Keys: bson.D{
				{Key: "provider_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "status", Value: 1},
				{Key: "start_time", Value: 1},
			},
			Options: options.Index().SetName("provider_date_status_idx"),
		},
		// Per-user history lookups.
		{
			Keys:    bson.D{{Key: "learner_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("learner_date_idx"),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	// The unique (provider, date) index makes the reservation upsert race
	// surface as a duplicate key instead of a second day document.
	dayIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_provider_date"),
	}
	if _, err := repo.days.Indexes().CreateOne(ctx, dayIndex); err != nil {
		return fmt.Errorf("failed to create booking day indexes: %w", err)
	}
	return nil
}

package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorly/database"
	"mentorly/models"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database("mentorly")
	return &MongoAvailabilityRepo{coll: db.Collection("availability_slots")}
}

// ReplaceForProvider atomically swaps the provider's full weekly schedule.
func (repo *MongoAvailabilityRepo) ReplaceForProvider(ctx context.Context, providerID string, slots []models.AvailabilitySlot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := repo.coll.DeleteMany(sc, bson.M{"provider_id": providerID}); err != nil {
			return fmt.Errorf("delete existing slots failed: %w", err)
		}
		if len(slots) == 0 {
			return nil
		}
		docs := make([]interface{}, 0, len(slots))
		for _, s := range slots {
			s.ProviderID = providerID
			docs = append(docs, s)
		}
		if _, err := repo.coll.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert slots failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("schedule replace transaction failed: %w", err)
	}

	return nil
}

// GetSlotsForDay returns the provider's active slots for the day, ordered by
// start time.
func (repo *MongoAvailabilityRepo) GetSlotsForDay(ctx context.Context, providerID string, dayOfWeek int) ([]models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"day_of_week": dayOfWeek,
		"is_active":   true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching slots for provider %s day %d: %w", providerID, dayOfWeek, err)
	}
	defer cursor.Close(ctx)

	var slots []models.AvailabilitySlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding availability slots: %w", err)
	}
	return slots, nil
}

package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorly/models"
)

// heldInterval is one reserved [start,end) interval inside a day document.
type heldInterval struct {
	BookingID string `bson:"booking_id"`
	StartTime string `bson:"start_time"`
	EndTime   string `bson:"end_time"`
}

// reserveFilter matches the provider's day document only while no held
// interval overlaps the candidate. Both bounds are zero-padded "HH:MM"
// strings, so the lexical $lt/$gt comparison is the half-open overlap
// predicate.
func reserveFilter(providerID, date, startTime, endTime string) bson.M {
	return bson.M{
		"provider_id": providerID,
		"date":        date,
		"intervals": bson.M{"$not": bson.M{"$elemMatch": bson.M{
			"start_time": bson.M{"$lt": endTime},
			"end_time":   bson.M{"$gt": startTime},
		}}},
	}
}

// CreateIfSlotFree inserts the booking only if no active booking holds an
// overlapping interval. The guard is a single conditional update on the
// provider's per-date day document: the filter rejects the document while
// any held interval overlaps, and pushing the new interval is one atomic
// document write, so concurrent requests for the same interval serialize on
// that document and at most one reservation lands.
func (repo *MongoBookingRepo) CreateIfSlotFree(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := repo.reserveInterval(ctx, booking); err != nil {
		return err
	}

	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		// Give the interval back, otherwise an orphaned hold blocks the slot.
		_ = repo.releaseInterval(ctx, booking)
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) reserveInterval(ctx context.Context, booking *models.Booking) error {
	filter := reserveFilter(booking.ProviderID, booking.Date, booking.StartTime, booking.EndTime)
	update := bson.M{"$push": bson.M{"intervals": heldInterval{
		BookingID: booking.ID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
	}}}

	res, err := repo.days.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the upsert race for a fresh day document. It exists now,
			// so retry as a plain conditional update against it.
			res, err = repo.days.UpdateOne(ctx, filter, update)
			if err != nil {
				return fmt.Errorf("interval reservation retry failed: %w", err)
			}
			if res.ModifiedCount == 0 {
				return ErrSlotTaken
			}
			return nil
		}
		return fmt.Errorf("interval reservation failed: %w", err)
	}
	if res.ModifiedCount == 0 && res.UpsertedCount == 0 {
		return ErrSlotTaken
	}
	return nil
}

// releaseInterval drops the booking's hold from its day document, freeing
// the interval for new reservations.
func (repo *MongoBookingRepo) releaseInterval(ctx context.Context, booking *models.Booking) error {
	_, err := repo.days.UpdateOne(ctx,
		bson.M{"provider_id": booking.ProviderID, "date": booking.Date},
		bson.M{"$pull": bson.M{"intervals": bson.M{"booking_id": booking.ID}}})
	if err != nil {
		return fmt.Errorf("interval release failed: %w", err)
	}
	return nil
}

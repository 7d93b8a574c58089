package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB. Alongside the
// bookings collection it keeps a booking_days collection with one document
// per (provider, date) holding the reserved intervals; reservations are
// conditional updates on that document.
type MongoBookingRepo struct {
	coll *mongo.Collection
	days *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("mentorly")
	return &MongoBookingRepo{
		coll: db.Collection("bookings"),
		days: db.Collection("booking_days"),
	}
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) ListActiveForProviderDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"date":        date,
		"status":      bson.M{"$in": bson.A{models.BookingStatusPending, models.BookingStatusConfirmed}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for provider %s on %s: %w", providerID, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"learner_id": userID},
		bson.M{"provider_id": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "start_time", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// Update rewrites the booking's mutable fields. Bookings are never deleted;
// cancellation is a status change.
func (repo *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"status":         booking.Status,
		"payment_ref":    booking.PaymentRef,
		"meeting_link":   booking.MeetingLink,
		"meeting_id":     booking.MeetingID,
		"meeting_secret": booking.MeetingSecret,
		"cancelled_by":   booking.CancelledBy,
		"updated_at":     booking.UpdatedAt,
	}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": booking.ID}, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if booking.Status == models.BookingStatusCancelled {
		// A cancelled booking no longer holds its interval.
		if err := repo.releaseInterval(ctx, booking); err != nil {
			return err
		}
	}
	return nil
}

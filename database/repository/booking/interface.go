package bookingRepo

import (
	"context"
	"errors"

	"mentorly/models"
)

// ErrSlotTaken is returned by CreateIfSlotFree when another active booking
// already holds an overlapping interval for the same provider and date.
var ErrSlotTaken = errors.New("slot already booked")

// ErrNotFound is returned when no booking matches the lookup.
var ErrNotFound = errors.New("booking not found")

// BookingRepository owns the booking collection. CreateIfSlotFree reserves
// the interval atomically before inserting, so two concurrent requests for
// overlapping intervals cannot both succeed.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListActiveForProviderDate returns the provider's bookings on the date
	// whose status still holds the interval (pending or confirmed).
	ListActiveForProviderDate(ctx context.Context, providerID, date string) ([]models.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
	CreateIfSlotFree(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, booking *models.Booking) error
}

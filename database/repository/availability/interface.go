package availabilityRepo

import (
	"context"

	"mentorly/models"
)

// AvailabilityRepository stores recurring weekly slots per provider.
//
// Slots have no identity beyond provider+day+time: ReplaceForProvider
// deletes and recreates the provider's whole week in one transaction.
type AvailabilityRepository interface {
	ReplaceForProvider(ctx context.Context, providerID string, slots []models.AvailabilitySlot) error
	GetSlotsForDay(ctx context.Context, providerID string, dayOfWeek int) ([]models.AvailabilitySlot, error)
}

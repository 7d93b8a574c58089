package availability

import (
	"context"

	"mentorly/config"
	"mentorly/models"
)

// defaultMaxActiveSlotsPerDay applies when no cap is configured.
const defaultMaxActiveSlotsPerDay = 5

// maxActiveSlotsPerDay bounds how many active slots a provider may publish
// for a single weekday, taken from MAX_ACTIVE_SLOTS_PER_DAY.
func maxActiveSlotsPerDay() int {
	if limit := config.AppConfig.MaxActiveSlotsPerDay; limit > 0 {
		return limit
	}
	return defaultMaxActiveSlotsPerDay
}

// Service manages a provider's recurring weekly availability.
type Service interface {
	// ReplaceWeeklySchedule validates and atomically replaces all of the
	// provider's slots. This is a full-schedule replace, not an incremental
	// patch: slot identity is intentionally lost across edits, which keeps
	// the client/server contract simple. Returns the number of slots stored.
	ReplaceWeeklySchedule(ctx context.Context, providerID string, slots []models.AvailabilitySlot) (int, error)
	// GetSlotsForDay returns the active slots for the weekday, ordered by
	// start time.
	GetSlotsForDay(ctx context.Context, providerID string, dayOfWeek int) ([]models.AvailabilitySlot, error)
}

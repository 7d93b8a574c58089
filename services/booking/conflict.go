package booking

import (
	"mentorly/models"
	"mentorly/utils"
)

// Intervals are half-open [start,end) in minutes from midnight: a booking
// ending at 10:00 and one starting at 10:00 do not conflict. Every call
// site compares through this one function; the checks are spelled out as
// three cases to keep the boundary semantics explicit.
func overlaps(candStart, candEnd, otherStart, otherEnd int) bool {
	// Candidate starts during the existing interval.
	if candStart >= otherStart && candStart < otherEnd {
		return true
	}
	// Candidate ends during the existing interval.
	if candEnd > otherStart && candEnd <= otherEnd {
		return true
	}
	// Candidate fully contains the existing interval.
	if candStart <= otherStart && candEnd >= otherEnd {
		return true
	}
	return false
}

// checkSlotContainment verifies the candidate interval falls entirely within
// a single active availability slot; a booking may not straddle the gap
// between two slots.
func checkSlotContainment(candStart, candEnd int, slots []models.AvailabilitySlot) error {
	for _, slot := range slots {
		slotStart, err := utils.ParseClock(slot.StartTime)
		if err != nil {
			continue
		}
		slotEnd, err := utils.ParseClock(slot.EndTime)
		if err != nil {
			continue
		}
		if candStart >= slotStart && candEnd <= slotEnd {
			return nil
		}
	}
	return models.NewAppError(models.ErrCodeSlotUnavailable,
		"requested time %s-%s is outside the provider's availability",
		utils.FormatClock(candStart), utils.FormatClock(candEnd))
}

// checkBookingConflicts rejects the candidate if any pending/confirmed
// booking on the same provider/date overlaps it.
func checkBookingConflicts(candStart, candEnd int, existing []models.Booking) error {
	for _, other := range existing {
		otherStart, err := utils.ParseClock(other.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := utils.ParseClock(other.EndTime)
		if err != nil {
			continue
		}
		if overlaps(candStart, candEnd, otherStart, otherEnd) {
			return models.NewAppError(models.ErrCodeSlotUnavailable,
				"requested time %s-%s conflicts with an existing booking",
				utils.FormatClock(candStart), utils.FormatClock(candEnd))
		}
	}
	return nil
}

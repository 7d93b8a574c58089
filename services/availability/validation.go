package availability

import (
	"mentorly/models"
	"mentorly/utils"
)

// validateSlots checks every slot in a weekly schedule and rejects on the
// first violation, identifying the offending slot.
func validateSlots(slots []models.AvailabilitySlot) error {
	type interval struct{ start, end int }
	perDay := make(map[int][]interval)

	for i, slot := range slots {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			return models.NewAppError(models.ErrCodeValidation,
				"slot %d: day of week must be between 0 and 6, got %d", i, slot.DayOfWeek)
		}
		start, err := utils.ParseClock(slot.StartTime)
		if err != nil {
			return models.NewAppError(models.ErrCodeValidation,
				"slot %d (day %d): %v", i, slot.DayOfWeek, err)
		}
		end, err := utils.ParseClock(slot.EndTime)
		if err != nil {
			return models.NewAppError(models.ErrCodeValidation,
				"slot %d (day %d): %v", i, slot.DayOfWeek, err)
		}
		if start >= end {
			return models.NewAppError(models.ErrCodeValidation,
				"slot %d (day %d): start %s must be before end %s",
				i, slot.DayOfWeek, slot.StartTime, slot.EndTime)
		}

		if !slot.IsActive {
			continue
		}

		day := perDay[slot.DayOfWeek]
		if maxPerDay := maxActiveSlotsPerDay(); len(day)+1 > maxPerDay {
			return models.NewAppError(models.ErrCodeValidation,
				"day %d exceeds the maximum of %d active slots", slot.DayOfWeek, maxPerDay)
		}
		for _, other := range day {
			if start < other.end && other.start < end {
				return models.NewAppError(models.ErrCodeValidation,
					"slot %d (day %d): %s-%s overlaps another active slot",
					i, slot.DayOfWeek, slot.StartTime, slot.EndTime)
			}
		}
		perDay[slot.DayOfWeek] = append(day, interval{start, end})
	}
	return nil
}

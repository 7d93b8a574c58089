package availability

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	availabilityRepo "mentorly/database/repository/availability"
	"mentorly/models"
)

// DefaultService implements Service.
type DefaultService struct {
	Repo   availabilityRepo.AvailabilityRepository
	Logger *zap.Logger
}

func (s *DefaultService) ReplaceWeeklySchedule(ctx context.Context, providerID string, slots []models.AvailabilitySlot) (int, error) {
	if providerID == "" {
		return 0, models.NewAppError(models.ErrCodeValidation, "provider id is required")
	}
	if err := validateSlots(slots); err != nil {
		return 0, err
	}

	if err := s.Repo.ReplaceForProvider(ctx, providerID, slots); err != nil {
		return 0, fmt.Errorf("failed to replace weekly schedule for provider %s: %w", providerID, err)
	}

	s.Logger.Info("weekly schedule replaced",
		zap.String("providerId", providerID),
		zap.Int("slots", len(slots)))
	return len(slots), nil
}

func (s *DefaultService) GetSlotsForDay(ctx context.Context, providerID string, dayOfWeek int) ([]models.AvailabilitySlot, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, models.NewAppError(models.ErrCodeValidation, "day of week must be between 0 and 6, got %d", dayOfWeek)
	}
	slots, err := s.Repo.GetSlotsForDay(ctx, providerID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots for provider %s day %d: %w", providerID, dayOfWeek, err)
	}
	return slots, nil
}

package availability

import (
	"strings"
	"testing"

	"mentorly/config"
	"mentorly/models"
)

func slot(day int, start, end string) models.AvailabilitySlot {
	return models.AvailabilitySlot{DayOfWeek: day, StartTime: start, EndTime: end, IsActive: true}
}

func TestValidateSlotsAccepts(t *testing.T) {
	tests := []struct {
		name  string
		slots []models.AvailabilitySlot
	}{
		{"empty schedule", nil},
		{"single slot", []models.AvailabilitySlot{slot(1, "09:00", "12:00")}},
		{"back-to-back on same day", []models.AvailabilitySlot{
			slot(1, "09:00", "12:00"),
			slot(1, "12:00", "17:00"),
		}},
		{"same interval on different days", []models.AvailabilitySlot{
			slot(1, "09:00", "12:00"),
			slot(2, "09:00", "12:00"),
		}},
		{"inactive slots may overlap active ones", []models.AvailabilitySlot{
			slot(1, "09:00", "12:00"),
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "11:00", IsActive: false},
		}},
		{"five active slots on one day", []models.AvailabilitySlot{
			slot(3, "08:00", "09:00"),
			slot(3, "09:00", "10:00"),
			slot(3, "10:00", "11:00"),
			slot(3, "11:00", "12:00"),
			slot(3, "12:00", "13:00"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateSlots(tt.slots); err != nil {
				t.Errorf("validateSlots() = %v, want nil", err)
			}
		})
	}
}

func TestValidateSlotsConfiguredDayCap(t *testing.T) {
	prev := config.AppConfig.MaxActiveSlotsPerDay
	config.AppConfig.MaxActiveSlotsPerDay = 2
	defer func() { config.AppConfig.MaxActiveSlotsPerDay = prev }()

	within := []models.AvailabilitySlot{
		slot(2, "08:00", "09:00"),
		slot(2, "09:00", "10:00"),
	}
	if err := validateSlots(within); err != nil {
		t.Errorf("two slots under a cap of 2: validateSlots() = %v, want nil", err)
	}

	over := append(within, slot(2, "10:00", "11:00"))
	err := validateSlots(over)
	if err == nil {
		t.Fatal("expected the third slot to breach the configured cap")
	}
	appErr, ok := models.AsAppError(err)
	if !ok || appErr.Code != models.ErrCodeValidation {
		t.Fatalf("expected validation_error, got %v", err)
	}
	if !strings.Contains(appErr.Message, "maximum of 2") {
		t.Errorf("message %q does not state the configured cap", appErr.Message)
	}
}

func TestValidateSlotsRejects(t *testing.T) {
	tests := []struct {
		name     string
		slots    []models.AvailabilitySlot
		fragment string
	}{
		{"day out of range", []models.AvailabilitySlot{slot(7, "09:00", "10:00")}, "day of week"},
		{"negative day", []models.AvailabilitySlot{slot(-1, "09:00", "10:00")}, "day of week"},
		{"bad clock", []models.AvailabilitySlot{slot(1, "9am", "10:00")}, "invalid time"},
		{"start equals end", []models.AvailabilitySlot{slot(1, "09:00", "09:00")}, "before end"},
		{"start after end", []models.AvailabilitySlot{slot(1, "14:00", "09:00")}, "before end"},
		{"overlap on same day", []models.AvailabilitySlot{
			slot(1, "09:00", "12:00"),
			slot(1, "11:00", "14:00"),
		}, "overlaps"},
		{"sixth active slot", []models.AvailabilitySlot{
			slot(3, "08:00", "09:00"),
			slot(3, "09:00", "10:00"),
			slot(3, "10:00", "11:00"),
			slot(3, "11:00", "12:00"),
			slot(3, "12:00", "13:00"),
			slot(3, "13:00", "14:00"),
		}, "maximum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSlots(tt.slots)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr, ok := models.AsAppError(err)
			if !ok || appErr.Code != models.ErrCodeValidation {
				t.Fatalf("expected validation_error, got %v", err)
			}
			if !strings.Contains(appErr.Message, tt.fragment) {
				t.Errorf("message %q does not mention %q", appErr.Message, tt.fragment)
			}
		})
	}
}

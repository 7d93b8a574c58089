package booking

import (
	"testing"

	"mentorly/models"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                 string
		candStart, candEnd   int
		otherStart, otherEnd int
		want                 bool
	}{
		{"back-to-back after", 600, 660, 540, 600, false},
		{"back-to-back before", 540, 600, 600, 660, false},
		{"identical", 540, 600, 540, 600, true},
		{"candidate starts inside", 570, 630, 540, 600, true},
		{"candidate ends inside", 510, 570, 540, 600, true},
		{"candidate contains other", 500, 700, 540, 600, true},
		{"candidate inside other", 550, 590, 540, 600, true},
		{"disjoint before", 400, 460, 540, 600, false},
		{"disjoint after", 700, 760, 540, 600, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlaps(tt.candStart, tt.candEnd, tt.otherStart, tt.otherEnd)
			if got != tt.want {
				t.Errorf("overlaps(%d,%d,%d,%d) = %v, want %v",
					tt.candStart, tt.candEnd, tt.otherStart, tt.otherEnd, got, tt.want)
			}
		})
	}
}

func TestCheckSlotContainment(t *testing.T) {
	slots := []models.AvailabilitySlot{
		{StartTime: "09:00", EndTime: "12:00", IsActive: true},
		{StartTime: "13:00", EndTime: "17:00", IsActive: true},
	}

	if err := checkSlotContainment(540, 600, slots); err != nil {
		t.Errorf("9:00-10:00 inside 9:00-12:00 should be allowed, got %v", err)
	}
	if err := checkSlotContainment(540, 720, slots); err != nil {
		t.Errorf("booking spanning a full slot should be allowed, got %v", err)
	}

	// Straddles the gap between the two slots.
	err := checkSlotContainment(690, 800, slots)
	if err == nil {
		t.Fatal("expected rejection for interval straddling two slots")
	}
	appErr, ok := models.AsAppError(err)
	if !ok || appErr.Code != models.ErrCodeSlotUnavailable {
		t.Errorf("expected slot_unavailable, got %v", err)
	}

	// Entirely outside any slot.
	if err := checkSlotContainment(420, 480, slots); err == nil {
		t.Error("expected rejection for interval before all slots")
	}
}

func TestCheckBookingConflicts(t *testing.T) {
	existing := []models.Booking{
		{StartTime: "10:00", EndTime: "11:00", Status: models.BookingStatusConfirmed},
	}

	// Adjacent intervals share only the boundary minute; no conflict.
	if err := checkBookingConflicts(660, 720, existing); err != nil {
		t.Errorf("11:00-12:00 after a 10:00-11:00 booking should be free, got %v", err)
	}
	if err := checkBookingConflicts(540, 600, existing); err != nil {
		t.Errorf("09:00-10:00 before a 10:00-11:00 booking should be free, got %v", err)
	}

	err := checkBookingConflicts(630, 690, existing)
	if err == nil {
		t.Fatal("expected conflict for 10:30-11:30 against 10:00-11:00")
	}
	appErr, ok := models.AsAppError(err)
	if !ok || appErr.Code != models.ErrCodeSlotUnavailable {
		t.Errorf("expected slot_unavailable, got %v", err)
	}
}

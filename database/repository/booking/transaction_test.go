package bookingRepo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// matchesHeld applies the reservation filter's $elemMatch predicate to one
// held interval, using the same lexical comparisons the server evaluates.
func matchesHeld(t *testing.T, filter bson.M, held heldInterval) bool {
	t.Helper()
	elem := filter["intervals"].(bson.M)["$not"].(bson.M)["$elemMatch"].(bson.M)
	ltEnd := elem["start_time"].(bson.M)["$lt"].(string)
	gtStart := elem["end_time"].(bson.M)["$gt"].(string)
	return held.StartTime < ltEnd && held.EndTime > gtStart
}

func TestReserveFilterTargetsProviderDay(t *testing.T) {
	filter := reserveFilter("provider-1", "2026-09-07", "10:00", "10:30")
	if filter["provider_id"] != "provider-1" {
		t.Errorf("provider_id = %v, want provider-1", filter["provider_id"])
	}
	if filter["date"] != "2026-09-07" {
		t.Errorf("date = %v, want 2026-09-07", filter["date"])
	}
}

func TestReserveFilterOverlapSemantics(t *testing.T) {
	filter := reserveFilter("provider-1", "2026-09-07", "10:00", "10:30")

	cases := []struct {
		name     string
		held     heldInterval
		overlaps bool
	}{
		{"identical interval", heldInterval{StartTime: "10:00", EndTime: "10:30"}, true},
		{"held contains candidate", heldInterval{StartTime: "09:00", EndTime: "11:00"}, true},
		{"held inside candidate", heldInterval{StartTime: "10:10", EndTime: "10:20"}, true},
		{"overlaps leading edge", heldInterval{StartTime: "09:45", EndTime: "10:01"}, true},
		{"overlaps trailing edge", heldInterval{StartTime: "10:29", EndTime: "11:00"}, true},
		{"back to back before", heldInterval{StartTime: "09:30", EndTime: "10:00"}, false},
		{"back to back after", heldInterval{StartTime: "10:30", EndTime: "11:00"}, false},
		{"disjoint earlier", heldInterval{StartTime: "08:00", EndTime: "09:00"}, false},
		{"disjoint later", heldInterval{StartTime: "14:00", EndTime: "15:00"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := matchesHeld(t, filter, tc.held); got != tc.overlaps {
				t.Errorf("held [%s,%s) overlap = %v, want %v",
					tc.held.StartTime, tc.held.EndTime, got, tc.overlaps)
			}
		})
	}
}

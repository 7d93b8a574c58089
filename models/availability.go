package models

// AvailabilitySlot is one recurring weekly interval during which a provider
// accepts bookings. Times are local wall-clock "HH:MM" strings at minute
// granularity, interpreted in the slot's timezone.
//
// Slots carry no identity beyond provider+day+time: a weekly schedule update
// deletes and recreates all of a provider's slots transactionally.
type AvailabilitySlot struct {
	ProviderID string `bson:"provider_id" json:"providerId"`
	DayOfWeek  int    `bson:"day_of_week" json:"dayOfWeek"` // 0 = Sunday .. 6 = Saturday
	StartTime  string `bson:"start_time" json:"startTime"`  // "HH:MM"
	EndTime    string `bson:"end_time" json:"endTime"`      // "HH:MM"
	IsActive   bool   `bson:"is_active" json:"isActive"`
	Timezone   string `bson:"timezone,omitempty" json:"timezone,omitempty"`
}

// WeeklyScheduleRequest is the payload for a full-week schedule replace.
type WeeklyScheduleRequest struct {
	Slots []AvailabilitySlot `json:"slots" binding:"required"`
}

package models

import "time"

// Roles recognised by the engine. The identity directory owns user records;
// we only read them.
const (
	RoleLearner  = "learner"
	RoleProvider = "provider"
)

// User is the identity record consumed from the directory.
type User struct {
	ID          string `bson:"id" json:"id"`
	Username    string `bson:"username" json:"username"`
	DisplayName string `bson:"display_name" json:"displayName"`
	Email       string `bson:"email" json:"email"`
	Role        string `bson:"role" json:"role"`
	// Timezone is the user's IANA timezone name (e.g. "Asia/Kolkata").
	// Meeting start times and calendar events are expressed in the
	// provider's timezone.
	Timezone string `bson:"timezone,omitempty" json:"timezone,omitempty"`

	// CalendarConnected reports whether the user has linked an external
	// calendar. When false, invites fall back to downloadable ICS files.
	CalendarConnected bool `bson:"calendar_connected" json:"calendarConnected"`
	// CalendarToken holds the stored OAuth2 token for the linked calendar,
	// serialized as JSON. Empty when no calendar is connected.
	CalendarToken string `bson:"calendar_token,omitempty" json:"-"`

	FCMToken string `bson:"fcm_token,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsProvider reports whether the user may publish availability and sessions.
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

// Location resolves the user's timezone, falling back to UTC when unset or
// unknown.
func (u *User) Location() *time.Location {
	if u.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

package models

import "time"

// Meeting platforms supported by the provisioner.
const (
	PlatformHostedVideo   = "hosted-video"
	PlatformGeneratedLink = "generated-link"
)

// Session (offering) statuses.
const (
	SessionStatusDraft     = "draft"
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// Session is a bookable offering published by a provider. Once a booking
// references a session, every field except Status is immutable.
type Session struct {
	ID          string   `bson:"id" json:"id"`
	ProviderID  string   `bson:"provider_id" json:"providerId"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Categories  []string `bson:"categories,omitempty" json:"categories,omitempty"`

	// Durations lists the allowed session lengths in minutes (subset of
	// 15/30/60). Prices maps a duration (as its decimal string, e.g. "30")
	// to the price charged for it.
	Durations []int              `bson:"durations" json:"durations"`
	Prices    map[string]float64 `bson:"prices" json:"prices"`
	Currency  string             `bson:"currency" json:"currency"`

	// Platform selects how the meeting destination is provisioned:
	// PlatformHostedVideo or PlatformGeneratedLink.
	Platform string `bson:"platform" json:"platform"`

	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

package calendar

import (
	"context"
	"time"

	"mentorly/models"
)

// Event is the engine's view of an external calendar entry.
type Event struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string
	Attendees   []string
	// ConferenceRequestID, when set, asks the calendar provider to attach
	// native conferencing to the event. Derived from the booking id so a
	// retried attempt does not create a duplicate conferencing link.
	ConferenceRequestID string
}

// Matcher decides whether an existing event belongs to a booking, given its
// summary and description.
type Matcher func(summary, description string) bool

// Provider is the external calendar contract the synchronizer depends on.
type Provider interface {
	IsConnected(ctx context.Context, user *models.User) bool
	CreateEvent(ctx context.Context, user *models.User, event *Event) (string, error)
	FindEvent(ctx context.Context, user *models.User, windowStart, windowEnd time.Time, match Matcher) (string, error)
	DeleteEvent(ctx context.Context, user *models.User, eventID string) error
}

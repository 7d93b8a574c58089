package models

import "time"

// Booking lifecycle statuses. Status is the authoritative lifecycle field:
// pending -> confirmed -> completed, and pending/confirmed -> cancelled.
// completed and cancelled are terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a concrete reservation of one slot-interval on one date.
// Records are never physically deleted; they are retained for audit and
// billing.
type Booking struct {
	ID         string `bson:"id" json:"id"`
	LearnerID  string `bson:"learner_id" json:"learnerId"`
	ProviderID string `bson:"provider_id" json:"providerId"`
	SessionID  string `bson:"session_id" json:"sessionId"`

	Date            string `bson:"date" json:"date"`             // "YYYY-MM-DD"
	StartTime       string `bson:"start_time" json:"startTime"`  // "HH:MM"
	EndTime         string `bson:"end_time" json:"endTime"`      // "HH:MM"
	DurationMinutes int    `bson:"duration_minutes" json:"durationMinutes"`

	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency" json:"currency"`

	MeetingLink   string `bson:"meeting_link,omitempty" json:"meetingLink,omitempty"`
	MeetingID     string `bson:"meeting_id,omitempty" json:"meetingId,omitempty"`
	MeetingSecret string `bson:"meeting_secret,omitempty" json:"meetingSecret,omitempty"`

	Status      string `bson:"status" json:"status"`
	PaymentRef  string `bson:"payment_ref,omitempty" json:"paymentRef,omitempty"`
	CancelledBy string `bson:"cancelled_by,omitempty" json:"cancelledBy,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsParty reports whether userID is the learner or the provider on the
// booking. Only parties may change its status.
func (b *Booking) IsParty(userID string) bool {
	return userID == b.LearnerID || userID == b.ProviderID
}

// CanTransitionTo reports whether the lifecycle permits moving from the
// booking's current status to next.
func (b *Booking) CanTransitionTo(next string) bool {
	switch b.Status {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	default:
		// completed and cancelled are terminal.
		return false
	}
}

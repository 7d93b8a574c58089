package models

// APIResponse is the uniform result shape every public operation returns.
// Callers inspect Success rather than relying on errors crossing the
// boundary.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details string      `json:"details,omitempty"`
}

// BookingResult is returned by the booking engine on create/confirm.
type BookingResult struct {
	BookingID     string  `json:"bookingId"`
	MeetingLink   string  `json:"meetingLink"`
	MeetingID     string  `json:"meetingId,omitempty"`
	MeetingSecret string  `json:"meetingSecret,omitempty"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
}

// ReminderPayload is the asynq task payload for a scheduled session
// reminder push.
type ReminderPayload struct {
	Target    string `json:"target"` // "learner" or "provider"
	UserID    string `json:"userId"`
	BookingID string `json:"bookingId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}

// InvitePayload is the asynq task payload for ICS invite/cancellation
// delivery.
type InvitePayload struct {
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	ICS       []byte `json:"ics"`
	Cancelled bool   `json:"cancelled"`
}

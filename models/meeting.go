package models

// MeetingInfo is the live-meeting destination produced by the provisioner
// for a confirmed booking.
type MeetingInfo struct {
	JoinURL    string `json:"joinUrl"`
	ExternalID string `json:"externalId,omitempty"`
	Secret     string `json:"secret,omitempty"`
}

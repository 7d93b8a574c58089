package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"mentorly/models"
	"mentorly/utils"
)

// HostedVideoProvisioner creates meetings through the hosted-video
// provider's REST API using a service-account token. No retries happen
// here: both token and creation failures propagate, and the caller aborts
// the whole booking.
type HostedVideoProvisioner struct {
	BaseURL    string
	Tokens     *TokenProvider
	HTTPClient *http.Client
}

type createMeetingRequest struct {
	Topic     string               `json:"topic"`
	Type      int                  `json:"type"` // 2 = scheduled meeting
	StartTime string               `json:"start_time"`
	Duration  int                  `json:"duration"`
	Timezone  string               `json:"timezone,omitempty"`
	Settings  createMeetingOptions `json:"settings"`
}

type createMeetingOptions struct {
	JoinBeforeHost bool `json:"join_before_host"`
	WaitingRoom    bool `json:"waiting_room"`
}

type createMeetingResponse struct {
	ID       int64  `json:"id"`
	JoinURL  string `json:"join_url"`
	Password string `json:"password"`
}

func (p *HostedVideoProvisioner) httpClient() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (p *HostedVideoProvisioner) Provision(ctx context.Context, session *models.Session, provider *models.User, booking *models.Booking) (*models.MeetingInfo, error) {
	token, err := p.Tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain video access token: %w", err)
	}

	// Meeting start is expressed in the provider's own timezone, carried
	// as an explicit field on the identity record.
	start, err := utils.CombineDateTime(booking.Date, booking.StartTime, provider.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid booking start: %w", err)
	}

	payload := createMeetingRequest{
		Topic:     session.Title,
		Type:      2,
		StartTime: start.Format("2006-01-02T15:04:05"),
		Duration:  booking.DurationMinutes,
		Timezone:  provider.Timezone,
		Settings: createMeetingOptions{
			JoinBeforeHost: true,
			WaitingRoom:    false,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode meeting request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/users/me/meetings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build meeting request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("meeting creation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("meeting creation returned %d: %s", resp.StatusCode, readErrorMessage(resp.Body))
	}

	var created createMeetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode meeting response: %w", err)
	}
	if created.JoinURL == "" {
		return nil, fmt.Errorf("meeting response did not include a join URL")
	}

	return &models.MeetingInfo{
		JoinURL:    created.JoinURL,
		ExternalID: strconv.FormatInt(created.ID, 10),
		Secret:     created.Password,
	}, nil
}

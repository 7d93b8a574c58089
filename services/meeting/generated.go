package meeting

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"

	"mentorly/models"
)

const linkAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GeneratedLinkProvisioner synthesizes a well-formed meeting URL locally:
// three alphanumeric groups ("xxx-xxxx-xxx"). No network call is involved;
// the only failure mode is RNG unavailability.
type GeneratedLinkProvisioner struct {
	Domain string
}

func (p *GeneratedLinkProvisioner) Provision(ctx context.Context, session *models.Session, provider *models.User, booking *models.Booking) (*models.MeetingInfo, error) {
	code, err := generateMeetingCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate meeting code: %w", err)
	}
	return &models.MeetingInfo{
		JoinURL:    fmt.Sprintf("https://%s/%s", p.Domain, code),
		ExternalID: code,
	}, nil
}

func generateMeetingCode() (string, error) {
	groups := []int{3, 4, 3}
	parts := make([]string, 0, len(groups))
	for _, size := range groups {
		buf := make([]byte, size)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for i := range buf {
			buf[i] = linkAlphabet[int(buf[i])%len(linkAlphabet)]
		}
		parts = append(parts, string(buf))
	}
	return strings.Join(parts, "-"), nil
}

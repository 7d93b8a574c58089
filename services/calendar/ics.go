package calendar

import (
	"fmt"
	"strings"
	"time"

	"mentorly/models"
	"mentorly/utils"
)

// ICSTimeLayout is the UTC timestamp format used in ICS blocks.
const ICSTimeLayout = "20060102T150405Z"

// Invite artifacts carry SEQUENCE 0; a cancellation for the same event must
// carry a strictly greater SEQUENCE so consuming calendars supersede the
// original invite.
const (
	inviteSequence = 0
	cancelSequence = 1
)

// icsUID derives the stable event UID for a booking.
func icsUID(booking *models.Booking) string {
	return fmt.Sprintf("booking-%s@mentorly.app", booking.ID)
}

// escapeText escapes commas, semicolons, backslashes and newlines per
// RFC 5545.
func escapeText(value string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return replacer.Replace(value)
}

func bookingInstants(booking *models.Booking, provider *models.User) (time.Time, time.Time, error) {
	loc := provider.Location()
	start, err := utils.CombineDateTime(booking.Date, booking.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := utils.CombineDateTime(booking.Date, booking.EndTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func buildICS(method string, sequence int, status string, booking *models.Booking, session *models.Session, provider, learner *models.User) ([]byte, error) {
	start, end, err := bookingInstants(booking, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve booking instants: %w", err)
	}

	description := fmt.Sprintf("Session with %s.", provider.DisplayName)
	if booking.MeetingLink != "" {
		description += " Join: " + booking.MeetingLink
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Mentorly//Booking Engine//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:" + method,
		"BEGIN:VEVENT",
		"UID:" + icsUID(booking),
		"DTSTAMP:" + time.Now().UTC().Format(ICSTimeLayout),
		"DTSTART:" + start.UTC().Format(ICSTimeLayout),
		"DTEND:" + end.UTC().Format(ICSTimeLayout),
		fmt.Sprintf("SEQUENCE:%d", sequence),
		"SUMMARY:" + escapeText(session.Title),
		"DESCRIPTION:" + escapeText(description),
		fmt.Sprintf("ORGANIZER;CN=%s:mailto:%s", escapeText(provider.DisplayName), provider.Email),
		fmt.Sprintf("ATTENDEE;CN=%s;RSVP=TRUE:mailto:%s", escapeText(learner.DisplayName), learner.Email),
		"STATUS:" + status,
		"END:VEVENT",
		"END:VCALENDAR",
	}
	// RFC 5545 requires CRLF line endings.
	return []byte(strings.Join(lines, "\r\n") + "\r\n"), nil
}

// BuildInvite produces the downloadable METHOD:REQUEST artifact used when a
// party has no connected calendar.
func BuildInvite(booking *models.Booking, session *models.Session, provider, learner *models.User) ([]byte, error) {
	return buildICS("REQUEST", inviteSequence, "CONFIRMED", booking, session, provider, learner)
}

// BuildCancellation produces the METHOD:CANCEL artifact delivered to the
// learner when a booking is cancelled.
func BuildCancellation(booking *models.Booking, session *models.Session, provider, learner *models.User) ([]byte, error) {
	return buildICS("CANCEL", cancelSequence, "CANCELLED", booking, session, provider, learner)
}

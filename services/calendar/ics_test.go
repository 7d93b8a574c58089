package calendar

import (
	"strings"
	"testing"

	"mentorly/models"
)

func icsFixture() (*models.Booking, *models.Session, *models.User, *models.User) {
	booking := &models.Booking{
		ID:          "b-42",
		Date:        "2026-09-07",
		StartTime:   "10:00",
		EndTime:     "10:30",
		MeetingLink: "https://video.example.com/j/123",
	}
	session := &models.Session{Title: "Calculus tutoring"}
	provider := &models.User{DisplayName: "Dr. Chen", Email: "chen@example.com", Timezone: "America/New_York"}
	learner := &models.User{DisplayName: "Asha", Email: "asha@example.com"}
	return booking, session, provider, learner
}

func icsLine(t *testing.T, body, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(body, "\r\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	t.Fatalf("no line with prefix %q in:\n%s", prefix, body)
	return ""
}

func TestBuildInvite(t *testing.T) {
	booking, session, provider, learner := icsFixture()

	ics, err := BuildInvite(booking, session, provider, learner)
	if err != nil {
		t.Fatalf("BuildInvite failed: %v", err)
	}
	body := string(ics)

	if !strings.HasSuffix(body, "END:VCALENDAR\r\n") {
		t.Error("artifact must end with END:VCALENDAR and CRLF")
	}
	if strings.Contains(strings.ReplaceAll(body, "\r\n", ""), "\n") {
		t.Error("all line endings must be CRLF")
	}

	if got := icsLine(t, body, "METHOD:"); got != "METHOD:REQUEST" {
		t.Errorf("method line = %q", got)
	}
	if got := icsLine(t, body, "UID:"); got != "UID:booking-b-42@mentorly.app" {
		t.Errorf("uid line = %q", got)
	}
	if got := icsLine(t, body, "SEQUENCE:"); got != "SEQUENCE:0" {
		t.Errorf("sequence line = %q", got)
	}
	if got := icsLine(t, body, "STATUS:"); got != "STATUS:CONFIRMED" {
		t.Errorf("status line = %q", got)
	}

	// 10:00 America/New_York on 2026-09-07 is 14:00 UTC (EDT).
	if got := icsLine(t, body, "DTSTART:"); got != "DTSTART:20260907T140000Z" {
		t.Errorf("dtstart line = %q", got)
	}
	if got := icsLine(t, body, "DTEND:"); got != "DTEND:20260907T143000Z" {
		t.Errorf("dtend line = %q", got)
	}

	if !strings.Contains(body, "DESCRIPTION:Session with Dr. Chen. Join: https://video.example.com/j/123") {
		t.Error("description must include the meeting link")
	}
	if !strings.Contains(body, "ATTENDEE;CN=Asha;RSVP=TRUE:mailto:asha@example.com") {
		t.Error("learner must appear as attendee")
	}
}

func TestBuildCancellationSupersedesInvite(t *testing.T) {
	booking, session, provider, learner := icsFixture()

	ics, err := BuildCancellation(booking, session, provider, learner)
	if err != nil {
		t.Fatalf("BuildCancellation failed: %v", err)
	}
	body := string(ics)

	if got := icsLine(t, body, "METHOD:"); got != "METHOD:CANCEL" {
		t.Errorf("method line = %q", got)
	}
	if got := icsLine(t, body, "STATUS:"); got != "STATUS:CANCELLED" {
		t.Errorf("status line = %q", got)
	}
	// Same UID as the invite so calendars replace the original event, with a
	// strictly greater sequence.
	if got := icsLine(t, body, "UID:"); got != "UID:booking-b-42@mentorly.app" {
		t.Errorf("uid line = %q", got)
	}
	if got := icsLine(t, body, "SEQUENCE:"); got != "SEQUENCE:1" {
		t.Errorf("sequence line = %q", got)
	}
}

func TestEscapeText(t *testing.T) {
	got := escapeText("a,b;c\\d\ne")
	want := "a\\,b\\;c\\\\d\\ne"
	if got != want {
		t.Errorf("escapeText = %q, want %q", got, want)
	}
}

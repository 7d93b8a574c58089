package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"mentorly/models"
)

// GoogleCalendar implements Provider against the Google Calendar API using
// each user's stored OAuth token.
type GoogleCalendar struct {
	OAuth *oauth2.Config
}

func (g *GoogleCalendar) IsConnected(ctx context.Context, user *models.User) bool {
	return user.CalendarConnected && user.CalendarToken != ""
}

func (g *GoogleCalendar) service(ctx context.Context, user *models.User) (*gcal.Service, error) {
	var token oauth2.Token
	if err := json.Unmarshal([]byte(user.CalendarToken), &token); err != nil {
		return nil, fmt.Errorf("invalid calendar token for user %s: %w", user.ID, err)
	}
	source := g.OAuth.TokenSource(ctx, &token)
	svc, err := gcal.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar client for user %s: %w", user.ID, err)
	}
	return svc, nil
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, user *models.User, event *Event) (string, error) {
	svc, err := g.service(ctx, user)
	if err != nil {
		return "", err
	}

	entry := &gcal.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start: &gcal.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: event.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: event.Timezone,
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 10},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
	for _, email := range event.Attendees {
		entry.Attendees = append(entry.Attendees, &gcal.EventAttendee{Email: email})
	}

	call := svc.Events.Insert("primary", entry)
	if event.ConferenceRequestID != "" {
		entry.ConferenceData = &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId: event.ConferenceRequestID,
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		}
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event for user %s: %w", user.ID, err)
	}
	return created.Id, nil
}

func (g *GoogleCalendar) FindEvent(ctx context.Context, user *models.User, windowStart, windowEnd time.Time, match Matcher) (string, error) {
	svc, err := g.service(ctx, user)
	if err != nil {
		return "", err
	}

	events, err := svc.Events.List("primary").
		TimeMin(windowStart.Format(time.RFC3339)).
		TimeMax(windowEnd.Format(time.RFC3339)).
		SingleEvents(true).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to list calendar events for user %s: %w", user.ID, err)
	}

	for _, item := range events.Items {
		if match(item.Summary, item.Description) {
			return item.Id, nil
		}
	}
	return "", nil
}

func (g *GoogleCalendar) DeleteEvent(ctx context.Context, user *models.User, eventID string) error {
	svc, err := g.service(ctx, user)
	if err != nil {
		return err
	}
	if err := svc.Events.Delete("primary", eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event %s for user %s: %w", eventID, user.ID, err)
	}
	return nil
}

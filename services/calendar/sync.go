package calendar

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"mentorly/models"
	"mentorly/services/notification"
)

// Synchronizer publishes confirmed and cancelled bookings to each party's
// external calendar, best-effort. It swallows its own errors: the
// reservation and meeting link are the contractual deliverable, the
// calendar entry is a convenience, so nothing here may fail a booking.
type Synchronizer struct {
	Calendar Provider
	Notifier notification.NotificationService
	Logger   *zap.Logger
}

// SyncBooking pushes the booking to the learner's and provider's calendars.
// The two parties are synchronized concurrently and independently: one
// party's failure never prevents the other's attempt.
func (s *Synchronizer) SyncBooking(ctx context.Context, booking *models.Booking, session *models.Session, provider, learner *models.User) {
	start, end, err := bookingInstants(booking, provider)
	if err != nil {
		s.Logger.Error("calendar sync skipped: unparseable booking times",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return
	}

	event := &Event{
		Summary:     session.Title,
		Description: fmt.Sprintf("Session with %s. Join: %s", provider.DisplayName, booking.MeetingLink),
		Start:       start,
		End:         end,
		Timezone:    provider.Timezone,
		Attendees:   []string{learner.Email, provider.Email},
	}
	// For locally generated links, ask the calendar to provision native
	// conferencing; the request id is derived from the booking so retries
	// stay idempotent.
	if session.Platform == models.PlatformGeneratedLink {
		event.ConferenceRequestID = "meet-" + booking.ID
	}

	var wg sync.WaitGroup
	for _, party := range []*models.User{learner, provider} {
		wg.Add(1)
		go func(party *models.User) {
			defer wg.Done()
			s.syncParty(ctx, party, event, booking, session, provider, learner)
		}(party)
	}
	wg.Wait()
}

func (s *Synchronizer) syncParty(ctx context.Context, party *models.User, event *Event, booking *models.Booking, session *models.Session, provider, learner *models.User) {
	if s.Calendar != nil && s.Calendar.IsConnected(ctx, party) {
		if _, err := s.Calendar.CreateEvent(ctx, party, event); err != nil {
			s.Logger.Warn("calendar event creation failed",
				zap.String("bookingId", booking.ID),
				zap.String("userId", party.ID),
				zap.Error(err))
		}
		return
	}

	// No connected calendar: the downloadable invite is the deliverable.
	ics, err := BuildInvite(booking, session, provider, learner)
	if err != nil {
		s.Logger.Warn("invite generation failed",
			zap.String("bookingId", booking.ID),
			zap.String("userId", party.ID),
			zap.Error(err))
		return
	}
	if err := s.Notifier.DeliverInvite(ctx, party.Email, ics); err != nil {
		s.Logger.Warn("invite delivery failed",
			zap.String("bookingId", booking.ID),
			zap.String("userId", party.ID),
			zap.Error(err))
	}
}

// RemoveBooking undoes the visible calendar effects of a booking and sends
// the learner a cancellation artifact. Every step is independently
// best-effort; absence of a matching event is not an error.
func (s *Synchronizer) RemoveBooking(ctx context.Context, booking *models.Booking, session *models.Session, provider, learner *models.User) {
	start, _, err := bookingInstants(booking, provider)
	if err != nil {
		s.Logger.Error("calendar removal skipped: unparseable booking times",
			zap.String("bookingId", booking.ID), zap.Error(err))
	} else {
		windowStart := start.Add(-24 * time.Hour)
		windowEnd := start.Add(24 * time.Hour)
		match := func(summary, description string) bool {
			if session.Title != "" && strings.Contains(summary, session.Title) {
				return true
			}
			return booking.MeetingLink != "" && strings.Contains(description, booking.MeetingLink)
		}

		for _, party := range []*models.User{learner, provider} {
			if s.Calendar == nil || !s.Calendar.IsConnected(ctx, party) {
				continue
			}
			eventID, err := s.Calendar.FindEvent(ctx, party, windowStart, windowEnd, match)
			if err != nil {
				s.Logger.Warn("calendar event search failed",
					zap.String("bookingId", booking.ID),
					zap.String("userId", party.ID),
					zap.Error(err))
				continue
			}
			if eventID == "" {
				continue
			}
			if err := s.Calendar.DeleteEvent(ctx, party, eventID); err != nil {
				s.Logger.Warn("calendar event removal failed",
					zap.String("bookingId", booking.ID),
					zap.String("userId", party.ID),
					zap.Error(err))
			}
		}
	}

	// The cancellation artifact goes to the learner regardless of calendar
	// connection state.
	ics, err := BuildCancellation(booking, session, provider, learner)
	if err != nil {
		s.Logger.Warn("cancellation artifact generation failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return
	}
	if err := s.Notifier.DeliverCancellation(ctx, learner.Email, ics); err != nil {
		s.Logger.Warn("cancellation delivery failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
}

package booking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mentorly/models"
)

// UpdateStatus transitions a booking through its lifecycle. Only a party to
// the booking may move it, and only along the allowed edges. A transition to
// cancelled additionally runs the cancellation workflow, whose failures are
// logged but never roll back the state change.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, newStatus, actorID string) (*models.BookingResult, error) {
	switch newStatus {
	case models.BookingStatusConfirmed:
		// Confirmation happens through payment completion, which verifies
		// the charge and provisions the meeting before flipping the status.
		return nil, models.NewAppError(models.ErrCodeInvalidState,
			"booking %s can only be confirmed by completing its payment", bookingID)
	case models.BookingStatusCompleted, models.BookingStatusCancelled:
	default:
		return nil, models.NewAppError(models.ErrCodeValidation, "unknown status %q", newStatus)
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsParty(actorID) {
		return nil, models.NewAppError(models.ErrCodeUnauthorized,
			"user %s is not a party to booking %s", actorID, bookingID)
	}
	if !booking.CanTransitionTo(newStatus) {
		return nil, models.NewAppError(models.ErrCodeInvalidState,
			"cannot move booking %s from %s to %s", bookingID, booking.Status, newStatus)
	}

	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	booking.Status = newStatus
	if newStatus == models.BookingStatusCancelled {
		booking.CancelledBy = actor.DisplayName
	}

	if err := s.Repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", bookingID, err)
	}

	s.Logger.Info("booking status changed",
		zap.String("bookingId", bookingID),
		zap.String("status", newStatus),
		zap.String("actorId", actorID))

	if newStatus == models.BookingStatusCancelled {
		s.afterCancel(ctx, booking, actor)
	}

	return toResult(booking), nil
}

// afterCancel runs the cancellation workflow: calendar teardown for both
// parties plus a push to the counterpart. Every step is best-effort, on a
// context detached from the request so a disconnect cannot cut it short.
func (s *DefaultBookingService) afterCancel(ctx context.Context, booking *models.Booking, actor *models.User) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), followUpTimeout)
	defer cancel()

	session, err := s.getSession(ctx, booking.SessionID)
	if err != nil {
		s.Logger.Warn("cancellation cleanup skipped: session lookup failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return
	}
	provider, err := s.getUser(ctx, booking.ProviderID)
	if err != nil {
		s.Logger.Warn("cancellation cleanup skipped: provider lookup failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return
	}
	learner, err := s.getUser(ctx, booking.LearnerID)
	if err != nil {
		s.Logger.Warn("cancellation cleanup skipped: learner lookup failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return
	}

	if s.Calendar != nil {
		s.Calendar.RemoveBooking(ctx, booking, session, provider, learner)
	}

	s.pushUpdate(ctx, booking, session, provider, learner, "Session cancelled",
		fmt.Sprintf("%s on %s was cancelled by %s", session.Title, booking.Date, actor.DisplayName))
}

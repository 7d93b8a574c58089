package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "mentorly/database/repository/booking"
	sessionRepo "mentorly/database/repository/session"
	userRepo "mentorly/database/repository/user"
	"mentorly/models"
	"mentorly/utils"
)

// followUpTimeout bounds the detached post-persist follow-ups.
const followUpTimeout = 30 * time.Second

// CreateBooking reserves a slot end to end: validate, conflict-check,
// resolve price, provision the meeting, persist, then run the best-effort
// calendar/notification follow-ups. A provisioning failure aborts the whole
// booking; a calendar failure never does.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.BookingResult, error) {
	startMin, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return nil, models.NewAppError(models.ErrCodeValidation, "start time: %v", err)
	}
	endMin, err := utils.ParseClock(req.EndTime)
	if err != nil {
		return nil, models.NewAppError(models.ErrCodeValidation, "end time: %v", err)
	}
	if startMin >= endMin {
		return nil, models.NewAppError(models.ErrCodeValidation,
			"start time %s must be before end time %s", req.StartTime, req.EndTime)
	}
	if endMin-startMin != req.DurationMinutes {
		return nil, models.NewAppError(models.ErrCodeValidation,
			"duration %d does not match the %s-%s interval", req.DurationMinutes, req.StartTime, req.EndTime)
	}
	dayOfWeek, err := utils.DayOfWeek(req.Date)
	if err != nil {
		return nil, models.NewAppError(models.ErrCodeValidation, "%v", err)
	}

	learner, err := s.getUser(ctx, req.LearnerID)
	if err != nil {
		return nil, err
	}
	provider, err := s.getProviderByUsername(ctx, req.ProviderUsername)
	if err != nil {
		return nil, err
	}
	session, err := s.getSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusActive {
		return nil, models.NewAppError(models.ErrCodeValidation,
			"session %s is %s, not active", session.ID, session.Status)
	}
	if session.ProviderID != provider.ID {
		return nil, models.NewAppError(models.ErrCodeValidation,
			"session %s does not belong to provider %s", session.ID, provider.Username)
	}

	// Availability: the day must have active slots, and the candidate must
	// sit inside one of them.
	slots, err := s.Availability.GetSlotsForDay(ctx, provider.ID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if len(slots) == 0 {
		return nil, models.NewAppError(models.ErrCodeNoAvailability,
			"provider %s has no availability on that day", provider.Username)
	}
	if err := checkSlotContainment(startMin, endMin, slots); err != nil {
		return nil, err
	}

	existing, err := s.Repo.ListActiveForProviderDate(ctx, provider.ID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing bookings: %w", err)
	}
	if err := checkBookingConflicts(startMin, endMin, existing); err != nil {
		return nil, err
	}

	amount, err := resolvePrice(session, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		ID:              uuid.New().String(),
		LearnerID:       learner.ID,
		ProviderID:      provider.ID,
		SessionID:       session.ID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: req.DurationMinutes,
		Amount:          amount,
		Currency:        session.Currency,
		Status:          models.BookingStatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if req.DeferPayment {
		// Provisioning is deferred to CompletePayment on this path.
		booking.Status = models.BookingStatusPending
	} else {
		info, err := s.provision(ctx, session, provider, booking)
		if err != nil {
			return nil, err
		}
		booking.MeetingLink = info.JoinURL
		booking.MeetingID = info.ExternalID
		booking.MeetingSecret = info.Secret
	}

	// The reservation and insert are atomic on the repo side; a concurrent
	// winner surfaces here as ErrSlotTaken.
	if err := s.Repo.CreateIfSlotFree(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, models.NewAppError(models.ErrCodeSlotUnavailable,
				"requested time %s-%s was just booked", req.StartTime, req.EndTime)
		}
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("providerId", provider.ID),
		zap.String("status", booking.Status))

	if booking.Status == models.BookingStatusConfirmed {
		s.afterConfirm(ctx, booking, session, provider, learner)
	}

	return toResult(booking), nil
}

// CompletePayment moves a payment-deferred booking from pending to
// confirmed: it verifies the payment reference, provisions the meeting that
// was skipped at request time, and attaches both to the booking.
func (s *DefaultBookingService) CompletePayment(ctx context.Context, bookingID, paymentRef string) (*models.BookingResult, error) {
	if paymentRef == "" {
		return nil, models.NewAppError(models.ErrCodeValidation, "payment reference is required")
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, models.NewAppError(models.ErrCodeInvalidState,
			"booking %s is %s, expected pending", bookingID, booking.Status)
	}

	if s.Payments != nil {
		if err := s.Payments.Verify(ctx, paymentRef, booking.Amount, booking.Currency); err != nil {
			return nil, models.NewAppError(models.ErrCodeValidation, "payment not confirmed: %v", err)
		}
	}

	session, err := s.getSession(ctx, booking.SessionID)
	if err != nil {
		return nil, err
	}
	provider, err := s.getUser(ctx, booking.ProviderID)
	if err != nil {
		return nil, err
	}
	learner, err := s.getUser(ctx, booking.LearnerID)
	if err != nil {
		return nil, err
	}

	info, err := s.provision(ctx, session, provider, booking)
	if err != nil {
		return nil, err
	}

	booking.MeetingLink = info.JoinURL
	booking.MeetingID = info.ExternalID
	booking.MeetingSecret = info.Secret
	booking.PaymentRef = paymentRef
	booking.Status = models.BookingStatusConfirmed

	if err := s.Repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to confirm booking %s: %w", bookingID, err)
	}

	s.Logger.Info("booking payment completed",
		zap.String("bookingId", booking.ID),
		zap.String("paymentRef", paymentRef))

	s.afterConfirm(ctx, booking, session, provider, learner)

	return toResult(booking), nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsParty(actorID) {
		return nil, models.NewAppError(models.ErrCodeUnauthorized,
			"user %s is not a party to booking %s", actorID, bookingID)
	}
	return booking, nil
}

func (s *DefaultBookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.Repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}

// provision dispatches to the platform's provisioner. An unknown platform
// is a configuration error; any provider failure aborts the booking.
func (s *DefaultBookingService) provision(ctx context.Context, session *models.Session, provider *models.User, booking *models.Booking) (*models.MeetingInfo, error) {
	prov, err := s.Provisioners.For(session.Platform)
	if err != nil {
		return nil, models.NewAppError(models.ErrCodeUnsupportedPlatform,
			"session %s: %v", session.ID, err)
	}
	info, err := prov.Provision(ctx, session, provider, booking)
	if err != nil {
		return nil, models.NewAppError(models.ErrCodeProvisioningFailed,
			"could not provision meeting: %v", err)
	}
	return info, nil
}

// afterConfirm runs the post-persist follow-ups. None of them may fail the
// booking: the reservation and meeting link are already the caller's. The
// context is detached from the request so a client disconnect after the
// booking lands cannot cut the follow-ups short.
func (s *DefaultBookingService) afterConfirm(ctx context.Context, booking *models.Booking, session *models.Session, provider, learner *models.User) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), followUpTimeout)
	defer cancel()

	if s.Calendar != nil {
		s.Calendar.SyncBooking(ctx, booking, session, provider, learner)
	}
	s.scheduleReminders(ctx, booking, session, provider, learner)
	s.pushUpdate(ctx, booking, session, provider, learner, "Session booked",
		fmt.Sprintf("%s on %s at %s", session.Title, booking.Date, booking.StartTime))
}

func (s *DefaultBookingService) scheduleReminders(ctx context.Context, booking *models.Booking, session *models.Session, provider, learner *models.User) {
	if s.Notifier == nil {
		return
	}
	start, err := utils.CombineDateTime(booking.Date, booking.StartTime, provider.Location())
	if err != nil {
		s.Logger.Warn("reminder skipped: unparseable booking start",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return
	}
	fireAt := start.Add(-24 * time.Hour)
	if fireAt.Before(time.Now()) {
		return
	}
	for _, target := range []struct {
		role string
		user *models.User
	}{
		{models.RoleLearner, learner},
		{models.RoleProvider, provider},
	} {
		payload := models.ReminderPayload{
			Target:    target.role,
			UserID:    target.user.ID,
			BookingID: booking.ID,
			Title:     "Upcoming session",
			Body:      fmt.Sprintf("%s is tomorrow at %s", session.Title, booking.StartTime),
			FireDate:  fireAt.Format(time.RFC3339),
		}
		if err := s.Notifier.ScheduleReminder(ctx, payload, fireAt); err != nil {
			s.Logger.Warn("reminder scheduling failed",
				zap.String("bookingId", booking.ID),
				zap.String("userId", target.user.ID),
				zap.Error(err))
		}
	}
}

func (s *DefaultBookingService) pushUpdate(ctx context.Context, booking *models.Booking, session *models.Session, provider, learner *models.User, title, body string) {
	if s.Notifier == nil {
		return
	}
	data := map[string]string{
		"type":      "booking_update",
		"bookingId": booking.ID,
		"status":    booking.Status,
	}
	for _, user := range []*models.User{learner, provider} {
		if err := s.Notifier.PushBookingUpdate(ctx, user.ID, title, body, data); err != nil {
			s.Logger.Warn("push notification failed",
				zap.String("bookingId", booking.ID),
				zap.String("userId", user.ID),
				zap.Error(err))
		}
	}
}

func resolvePrice(session *models.Session, duration int) (float64, error) {
	allowed := false
	for _, d := range session.Durations {
		if d == duration {
			allowed = true
			break
		}
	}
	price, priced := session.Prices[strconv.Itoa(duration)]
	if !allowed || !priced {
		return 0, models.NewAppError(models.ErrCodeInvalidDuration,
			"session %s does not offer a %d-minute duration", session.ID, duration)
	}
	return price, nil
}

func toResult(booking *models.Booking) *models.BookingResult {
	return &models.BookingResult{
		BookingID:     booking.ID,
		MeetingLink:   booking.MeetingLink,
		MeetingID:     booking.MeetingID,
		MeetingSecret: booking.MeetingSecret,
		Amount:        booking.Amount,
		Currency:      booking.Currency,
		Status:        booking.Status,
	}
}

func (s *DefaultBookingService) getUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, models.NewAppError(models.ErrCodeNotFound, "user %s not found", id)
		}
		return nil, fmt.Errorf("failed to resolve user %s: %w", id, err)
	}
	return user, nil
}

func (s *DefaultBookingService) getProviderByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.UserRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, models.NewAppError(models.ErrCodeNotFound, "provider %s not found", username)
		}
		return nil, fmt.Errorf("failed to resolve provider %s: %w", username, err)
	}
	if !user.IsProvider() {
		return nil, models.NewAppError(models.ErrCodeValidation,
			"%s is not a provider account", username)
	}
	return user, nil
}

func (s *DefaultBookingService) getSession(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.SessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			return nil, models.NewAppError(models.ErrCodeNotFound, "session %s not found", id)
		}
		return nil, fmt.Errorf("failed to resolve session %s: %w", id, err)
	}
	return session, nil
}

func (s *DefaultBookingService) getBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, models.NewAppError(models.ErrCodeNotFound, "booking %s not found", id)
		}
		return nil, fmt.Errorf("failed to resolve booking %s: %w", id, err)
	}
	return booking, nil
}

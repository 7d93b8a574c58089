package booking

import (
	"context"

	"go.uber.org/zap"

	availabilityRepo "mentorly/database/repository/availability"
	bookingRepo "mentorly/database/repository/booking"
	sessionRepo "mentorly/database/repository/session"
	userRepo "mentorly/database/repository/user"
	"mentorly/models"
	"mentorly/services/meeting"
	"mentorly/services/notification"
)

// CreateBookingRequest carries everything needed to reserve a slot.
type CreateBookingRequest struct {
	LearnerID        string `json:"-"`
	SessionID        string `json:"sessionId" binding:"required"`
	ProviderUsername string `json:"providerUsername" binding:"required"`
	Date             string `json:"date" binding:"required"`      // "YYYY-MM-DD"
	StartTime        string `json:"startTime" binding:"required"` // "HH:MM"
	EndTime          string `json:"endTime" binding:"required"`   // "HH:MM"
	DurationMinutes  int    `json:"durationMinutes" binding:"required"`
	// DeferPayment persists the booking as pending without provisioning a
	// meeting; CompletePayment later provisions and confirms it.
	DeferPayment bool `json:"deferPayment"`
}

// BookingService owns the reservation lifecycle: it sequences availability
// lookup, conflict checking, meeting provisioning, persistence and the
// best-effort calendar/notification follow-ups.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.BookingResult, error)
	CompletePayment(ctx context.Context, bookingID, paymentRef string) (*models.BookingResult, error)
	UpdateStatus(ctx context.Context, bookingID, newStatus, actorID string) (*models.BookingResult, error)
	GetBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
}

// CalendarSync is the slice of the calendar synchronizer the engine needs.
// Both methods swallow their own errors.
type CalendarSync interface {
	SyncBooking(ctx context.Context, booking *models.Booking, session *models.Session, provider, learner *models.User)
	RemoveBooking(ctx context.Context, booking *models.Booking, session *models.Session, provider, learner *models.User)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	UserRepo     userRepo.UserRepository
	SessionRepo  sessionRepo.SessionRepository
	Availability availabilityRepo.AvailabilityRepository
	Provisioners *meeting.Registry
	Calendar     CalendarSync
	Payments     PaymentVerifier
	Notifier     notification.NotificationService
	Logger       *zap.Logger
}

package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	userRepo "mentorly/database/repository/user"
	"mentorly/models"
	"mentorly/utils"
)

// DefaultNotificationService is the production implementation. Invite and
// reminder delivery is queued on asynq; pushes go straight to FCM.
type DefaultNotificationService struct {
	Users  userRepo.UserRepository
	Tasks  *asynq.Client
	Logger *zap.Logger
}

func (s *DefaultNotificationService) enqueueInvite(ctx context.Context, payload models.InvitePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal invite payload: %w", err)
	}
	task := asynq.NewTask(TaskTypeInviteDeliver, data)
	if _, err := s.Tasks.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue invite delivery: %w", err)
	}
	return nil
}

func (s *DefaultNotificationService) DeliverInvite(ctx context.Context, email string, icsBytes []byte) error {
	return s.enqueueInvite(ctx, models.InvitePayload{
		Email:   email,
		Subject: "Your session is booked",
		ICS:     icsBytes,
	})
}

func (s *DefaultNotificationService) DeliverCancellation(ctx context.Context, email string, icsBytes []byte) error {
	return s.enqueueInvite(ctx, models.InvitePayload{
		Email:     email,
		Subject:   "Your session was cancelled",
		ICS:       icsBytes,
		Cancelled: true,
	})
}

// PushBookingUpdate looks up the user's FCM token and sends a push.
func (s *DefaultNotificationService) PushBookingUpdate(ctx context.Context, userID, title, body string, data map[string]string) error {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not find user %s: %w", userID, err)
	}
	if user.FCMToken == "" {
		// No push target; not an error worth surfacing.
		return nil
	}
	if utils.FCMClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message to user %s: %w", userID, err)
	}
	return nil
}

// ScheduleReminder queues a reminder push to fire at the given instant.
func (s *DefaultNotificationService) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, at time.Time) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	task := asynq.NewTask(TaskTypeReminderSend, data)
	if _, err := s.Tasks.EnqueueContext(ctx, task, asynq.ProcessAt(at)); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	s.Logger.Debug("reminder scheduled",
		zap.String("bookingId", payload.BookingID),
		zap.Time("fireAt", at))
	return nil
}

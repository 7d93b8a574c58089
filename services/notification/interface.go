package notification

import (
	"context"
	"time"

	"mentorly/models"
)

// Asynq task types consumed by the background worker.
const (
	TaskTypeInviteDeliver = "invite:deliver"
	TaskTypeReminderSend  = "reminder:send"
)

// NotificationService delivers calendar-invite artifacts and push
// notifications. Delivery is fire-and-forget from the engine's perspective:
// callers treat errors as advisory.
type NotificationService interface {
	DeliverInvite(ctx context.Context, email string, icsBytes []byte) error
	DeliverCancellation(ctx context.Context, email string, icsBytes []byte) error
	PushBookingUpdate(ctx context.Context, userID, title, body string, data map[string]string) error
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, at time.Time) error
}

package sessionRepo

import (
	"context"

	"mentorly/models"
)

// SessionRepository provides access to provider offerings. A session is
// immutable once a booking references it, except for its status.
type SessionRepository interface {
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Create(ctx context.Context, session *models.Session) error
	UpdateStatus(ctx context.Context, id, status string) error
}

package session

import (
	"context"

	"mentorly/models"
)

// CreateSessionRequest carries a provider's new offering.
type CreateSessionRequest struct {
	ProviderID  string             `json:"-"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Categories  []string           `json:"categories"`
	Durations   []int              `json:"durations" binding:"required"`
	Prices      map[string]float64 `json:"prices" binding:"required"`
	Currency    string             `json:"currency" binding:"required"`
	Platform    string             `json:"platform" binding:"required"`
}

// Service manages session offerings. A session is immutable once published
// except for its status.
type Service interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*models.Session, error)
	UpdateStatus(ctx context.Context, sessionID, newStatus, actorID string) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
}

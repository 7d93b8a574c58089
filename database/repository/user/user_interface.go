package userRepo

import (
	"context"

	"mentorly/models"
)

// UserRepository is the read-side contract against the identity directory.
// The engine never mutates identity records.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

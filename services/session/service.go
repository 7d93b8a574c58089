package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	sessionRepo "mentorly/database/repository/session"
	userRepo "mentorly/database/repository/user"
	"mentorly/models"
)

// allowedDurations are the only bookable session lengths.
var allowedDurations = map[int]bool{15: true, 30: true, 60: true}

// DefaultService implements Service.
type DefaultService struct {
	Repo     sessionRepo.SessionRepository
	UserRepo userRepo.UserRepository
	Logger   *zap.Logger
}

func (s *DefaultService) CreateSession(ctx context.Context, req CreateSessionRequest) (*models.Session, error) {
	provider, err := s.UserRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, models.NewAppError(models.ErrCodeNotFound, "user %s not found", req.ProviderID)
		}
		return nil, fmt.Errorf("failed to resolve provider %s: %w", req.ProviderID, err)
	}
	if !provider.IsProvider() {
		return nil, models.NewAppError(models.ErrCodeUnauthorized, "only providers may publish sessions")
	}

	if err := validateOffering(req); err != nil {
		return nil, err
	}

	now := time.Now()
	session := &models.Session{
		ID:          uuid.New().String(),
		ProviderID:  provider.ID,
		Title:       req.Title,
		Description: req.Description,
		Categories:  req.Categories,
		Durations:   req.Durations,
		Prices:      req.Prices,
		Currency:    req.Currency,
		Platform:    req.Platform,
		Status:      models.SessionStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.Logger.Info("session published",
		zap.String("sessionId", session.ID),
		zap.String("providerId", provider.ID),
		zap.String("platform", session.Platform))
	return session, nil
}

func (s *DefaultService) UpdateStatus(ctx context.Context, sessionID, newStatus, actorID string) error {
	switch newStatus {
	case models.SessionStatusActive, models.SessionStatusCompleted, models.SessionStatusCancelled:
	default:
		return models.NewAppError(models.ErrCodeValidation, "unknown status %q", newStatus)
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.ProviderID != actorID {
		return models.NewAppError(models.ErrCodeUnauthorized,
			"user %s does not own session %s", actorID, sessionID)
	}
	if session.Status == models.SessionStatusCompleted || session.Status == models.SessionStatusCancelled {
		return models.NewAppError(models.ErrCodeInvalidState,
			"session %s is %s and can no longer change", sessionID, session.Status)
	}

	if err := s.Repo.UpdateStatus(ctx, sessionID, newStatus); err != nil {
		return fmt.Errorf("failed to update session %s: %w", sessionID, err)
	}
	return nil
}

func (s *DefaultService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.Repo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			return nil, models.NewAppError(models.ErrCodeNotFound, "session %s not found", sessionID)
		}
		return nil, fmt.Errorf("failed to resolve session %s: %w", sessionID, err)
	}
	return session, nil
}

func validateOffering(req CreateSessionRequest) error {
	if len(req.Durations) == 0 {
		return models.NewAppError(models.ErrCodeValidation, "at least one duration is required")
	}
	for _, d := range req.Durations {
		if !allowedDurations[d] {
			return models.NewAppError(models.ErrCodeInvalidDuration,
				"duration %d is not offered; allowed lengths are 15, 30 and 60 minutes", d)
		}
		price, ok := req.Prices[strconv.Itoa(d)]
		if !ok {
			return models.NewAppError(models.ErrCodeValidation,
				"duration %d has no price", d)
		}
		if price < 0 {
			return models.NewAppError(models.ErrCodeValidation,
				"duration %d has a negative price", d)
		}
	}
	switch req.Platform {
	case models.PlatformHostedVideo, models.PlatformGeneratedLink:
	default:
		return models.NewAppError(models.ErrCodeUnsupportedPlatform,
			"platform %q is not supported", req.Platform)
	}
	return nil
}

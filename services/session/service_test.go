package session

import (
	"context"
	"testing"

	"go.uber.org/zap"

	userRepo "mentorly/database/repository/user"
	"mentorly/models"
)

type memSessionRepo struct {
	sessions map[string]*models.Session
}

func (m *memSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	if s, ok := m.sessions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, models.NewAppError(models.ErrCodeNotFound, "session %s not found", id)
}

func (m *memSessionRepo) Create(ctx context.Context, session *models.Session) error {
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *memSessionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	m.sessions[id].Status = status
	return nil
}

type memUserRepo struct {
	users map[string]*models.User
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrNotFound
}

func (m *memUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func newService() (*DefaultService, *memSessionRepo) {
	repo := &memSessionRepo{sessions: make(map[string]*models.Session)}
	svc := &DefaultService{
		Repo: repo,
		UserRepo: &memUserRepo{users: map[string]*models.User{
			"provider-1": {ID: "provider-1", Role: models.RoleProvider},
			"learner-1":  {ID: "learner-1", Role: models.RoleLearner},
		}},
		Logger: zap.NewNop(),
	}
	return svc, repo
}

func validOffering() CreateSessionRequest {
	return CreateSessionRequest{
		ProviderID: "provider-1",
		Title:      "Calculus tutoring",
		Durations:  []int{30, 60},
		Prices:     map[string]float64{"30": 40, "60": 70},
		Currency:   "USD",
		Platform:   models.PlatformHostedVideo,
	}
}

func TestCreateSession(t *testing.T) {
	svc, repo := newService()

	created, err := svc.CreateSession(context.Background(), validOffering())
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if created.Status != models.SessionStatusActive {
		t.Errorf("status = %q, want active", created.Status)
	}
	if _, ok := repo.sessions[created.ID]; !ok {
		t.Error("session not persisted")
	}
}

func TestCreateSessionValidation(t *testing.T) {
	svc, _ := newService()

	tests := []struct {
		name   string
		mutate func(*CreateSessionRequest)
		code   string
	}{
		{"learner cannot publish", func(r *CreateSessionRequest) { r.ProviderID = "learner-1" }, models.ErrCodeUnauthorized},
		{"unknown provider", func(r *CreateSessionRequest) { r.ProviderID = "ghost" }, models.ErrCodeNotFound},
		{"no durations", func(r *CreateSessionRequest) { r.Durations = nil }, models.ErrCodeValidation},
		{"disallowed duration", func(r *CreateSessionRequest) { r.Durations = []int{45} }, models.ErrCodeInvalidDuration},
		{"unpriced duration", func(r *CreateSessionRequest) { delete(r.Prices, "60") }, models.ErrCodeValidation},
		{"unknown platform", func(r *CreateSessionRequest) { r.Platform = "carrier-pigeon" }, models.ErrCodeUnsupportedPlatform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validOffering()
			tt.mutate(&req)
			_, err := svc.CreateSession(context.Background(), req)
			if err == nil {
				t.Fatal("expected error")
			}
			appErr, ok := models.AsAppError(err)
			if !ok || appErr.Code != tt.code {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, repo := newService()
	created, err := svc.CreateSession(context.Background(), validOffering())
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), created.ID, models.SessionStatusCompleted, "provider-1"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if repo.sessions[created.ID].Status != models.SessionStatusCompleted {
		t.Error("status not persisted")
	}

	// Terminal sessions no longer change.
	err = svc.UpdateStatus(context.Background(), created.ID, models.SessionStatusCancelled, "provider-1")
	if appErr, ok := models.AsAppError(err); !ok || appErr.Code != models.ErrCodeInvalidState {
		t.Errorf("error = %v, want invalid_state", err)
	}

	// Only the owner may change status.
	created2, _ := svc.CreateSession(context.Background(), validOffering())
	err = svc.UpdateStatus(context.Background(), created2.ID, models.SessionStatusCancelled, "learner-1")
	if appErr, ok := models.AsAppError(err); !ok || appErr.Code != models.ErrCodeUnauthorized {
		t.Errorf("error = %v, want unauthorized", err)
	}
}

package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	bookingRepo "mentorly/database/repository/booking"
	userRepo "mentorly/database/repository/user"
	"mentorly/models"
	"mentorly/services/meeting"
)

// ---- fakes ----

type fakeUserRepo struct {
	byID       map[string]*models.User
	byUsername map[string]*models.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, userRepo.ErrNotFound
}

type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, errors.New("session not found")
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error { return nil }

func (f *fakeSessionRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }

type fakeAvailabilityRepo struct {
	slots []models.AvailabilitySlot
}

func (f *fakeAvailabilityRepo) ReplaceForProvider(ctx context.Context, providerID string, slots []models.AvailabilitySlot) error {
	f.slots = slots
	return nil
}

func (f *fakeAvailabilityRepo) GetSlotsForDay(ctx context.Context, providerID string, dayOfWeek int) ([]models.AvailabilitySlot, error) {
	return f.slots, nil
}

type fakeBookingRepo struct {
	existing  []models.Booking
	stored    map[string]*models.Booking
	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{stored: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if b, ok := f.stored[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeBookingRepo) ListActiveForProviderDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	return f.existing, nil
}

func (f *fakeBookingRepo) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.stored {
		if b.LearnerID == userID || b.ProviderID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CreateIfSlotFree(ctx context.Context, booking *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	copied := *booking
	f.stored[booking.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	copied := *booking
	f.stored[booking.ID] = &copied
	return nil
}

type fakeProvisioner struct {
	info  *models.MeetingInfo
	err   error
	calls int
}

func (f *fakeProvisioner) Provision(ctx context.Context, session *models.Session, provider *models.User, booking *models.Booking) (*models.MeetingInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

type fakeCalendar struct {
	synced       int
	removed      int
	syncCtxErr   error
	removeCtxErr error
}

func (f *fakeCalendar) SyncBooking(ctx context.Context, booking *models.Booking, session *models.Session, provider, learner *models.User) {
	f.synced++
	f.syncCtxErr = ctx.Err()
}

func (f *fakeCalendar) RemoveBooking(ctx context.Context, booking *models.Booking, session *models.Session, provider, learner *models.User) {
	f.removed++
	f.removeCtxErr = ctx.Err()
}

type fakeNotifier struct {
	pushes    int
	reminders int
}

func (f *fakeNotifier) DeliverInvite(ctx context.Context, email string, ics []byte) error {
	return nil
}

func (f *fakeNotifier) DeliverCancellation(ctx context.Context, email string, ics []byte) error {
	return nil
}

func (f *fakeNotifier) PushBookingUpdate(ctx context.Context, userID, title, body string, data map[string]string) error {
	f.pushes++
	return nil
}

func (f *fakeNotifier) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, at time.Time) error {
	f.reminders++
	return nil
}

type fakeVerifier struct {
	err error
}

func (f *fakeVerifier) Verify(ctx context.Context, paymentRef string, amount float64, currency string) error {
	return f.err
}

// ---- fixtures ----

type fixture struct {
	svc      *DefaultBookingService
	bookings *fakeBookingRepo
	slots    *fakeAvailabilityRepo
	prov     *fakeProvisioner
	cal      *fakeCalendar
	notifier *fakeNotifier
	verifier *fakeVerifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	learner := &models.User{ID: "learner-1", Username: "asha", DisplayName: "Asha", Email: "asha@example.com", Role: models.RoleLearner}
	provider := &models.User{ID: "provider-1", Username: "drchen", DisplayName: "Dr. Chen", Email: "chen@example.com", Role: models.RoleProvider, Timezone: "America/New_York"}

	session := &models.Session{
		ID:         "session-1",
		ProviderID: "provider-1",
		Title:      "Calculus tutoring",
		Durations:  []int{30, 60},
		Prices:     map[string]float64{"30": 40, "60": 70},
		Currency:   "USD",
		Platform:   models.PlatformHostedVideo,
		Status:     models.SessionStatusActive,
	}

	f := &fixture{
		bookings: newFakeBookingRepo(),
		slots: &fakeAvailabilityRepo{slots: []models.AvailabilitySlot{
			{ProviderID: "provider-1", StartTime: "09:00", EndTime: "17:00", IsActive: true},
		}},
		prov:     &fakeProvisioner{info: &models.MeetingInfo{JoinURL: "https://video.example.com/j/123", ExternalID: "123", Secret: "s3cret"}},
		cal:      &fakeCalendar{},
		notifier: &fakeNotifier{},
		verifier: &fakeVerifier{},
	}

	registry := meeting.NewRegistry()
	registry.Register(models.PlatformHostedVideo, f.prov)

	f.svc = &DefaultBookingService{
		Repo: f.bookings,
		UserRepo: &fakeUserRepo{
			byID:       map[string]*models.User{"learner-1": learner, "provider-1": provider},
			byUsername: map[string]*models.User{"asha": learner, "drchen": provider},
		},
		SessionRepo:  &fakeSessionRepo{sessions: map[string]*models.Session{"session-1": session}},
		Availability: f.slots,
		Provisioners: registry,
		Calendar:     f.cal,
		Payments:     f.verifier,
		Notifier:     f.notifier,
		Logger:       zap.NewNop(),
	}
	return f
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		LearnerID:        "learner-1",
		SessionID:        "session-1",
		ProviderUsername: "drchen",
		Date:             "2026-09-07", // a Monday
		StartTime:        "10:00",
		EndTime:          "10:30",
		DurationMinutes:  30,
	}
}

// ---- tests ----

func TestCreateBookingHappyPath(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if result.Status != models.BookingStatusConfirmed {
		t.Errorf("status = %q, want confirmed", result.Status)
	}
	if result.MeetingLink != "https://video.example.com/j/123" {
		t.Errorf("meeting link = %q", result.MeetingLink)
	}
	if result.Amount != 40 || result.Currency != "USD" {
		t.Errorf("amount = %v %s, want 40 USD", result.Amount, result.Currency)
	}

	stored, err := f.bookings.GetByID(context.Background(), result.BookingID)
	if err != nil {
		t.Fatalf("booking not persisted: %v", err)
	}
	if stored.MeetingID != "123" || stored.MeetingSecret != "s3cret" {
		t.Errorf("meeting fields not persisted: %+v", stored)
	}

	if f.cal.synced != 1 {
		t.Errorf("calendar sync calls = %d, want 1", f.cal.synced)
	}
	if f.notifier.pushes != 2 {
		t.Errorf("pushes = %d, want one per party", f.notifier.pushes)
	}
}

func TestCreateBookingNoAvailability(t *testing.T) {
	f := newFixture(t)
	f.slots.slots = nil

	_, err := f.svc.CreateBooking(context.Background(), validRequest())
	assertCode(t, err, models.ErrCodeNoAvailability)
}

func TestCreateBookingOutsideSlot(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.StartTime = "18:00"
	req.EndTime = "18:30"

	_, err := f.svc.CreateBooking(context.Background(), req)
	assertCode(t, err, models.ErrCodeSlotUnavailable)
}

func TestCreateBookingConflictsWithExisting(t *testing.T) {
	f := newFixture(t)
	f.bookings.existing = []models.Booking{
		{StartTime: "10:00", EndTime: "11:00", Status: models.BookingStatusConfirmed},
	}

	_, err := f.svc.CreateBooking(context.Background(), validRequest())
	assertCode(t, err, models.ErrCodeSlotUnavailable)
}

func TestCreateBookingBackToBackAllowed(t *testing.T) {
	f := newFixture(t)
	f.bookings.existing = []models.Booking{
		{StartTime: "09:30", EndTime: "10:00", Status: models.BookingStatusConfirmed},
	}

	if _, err := f.svc.CreateBooking(context.Background(), validRequest()); err != nil {
		t.Errorf("booking starting exactly when another ends should succeed, got %v", err)
	}
}

func TestCreateBookingInvalidDuration(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.StartTime = "10:00"
	req.EndTime = "10:45"
	req.DurationMinutes = 45

	_, err := f.svc.CreateBooking(context.Background(), req)
	assertCode(t, err, models.ErrCodeInvalidDuration)
}

func TestCreateBookingDurationMismatch(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.DurationMinutes = 60 // interval is only 30 minutes

	_, err := f.svc.CreateBooking(context.Background(), req)
	assertCode(t, err, models.ErrCodeValidation)
}

func TestCreateBookingUnsupportedPlatform(t *testing.T) {
	f := newFixture(t)
	f.svc.Provisioners = meeting.NewRegistry() // nothing registered

	_, err := f.svc.CreateBooking(context.Background(), validRequest())
	assertCode(t, err, models.ErrCodeUnsupportedPlatform)
}

func TestCreateBookingProvisioningFailureLeavesNothingBehind(t *testing.T) {
	f := newFixture(t)
	f.prov.err = errors.New("video provider down")

	_, err := f.svc.CreateBooking(context.Background(), validRequest())
	assertCode(t, err, models.ErrCodeProvisioningFailed)

	if len(f.bookings.stored) != 0 {
		t.Error("no booking may be persisted when provisioning fails")
	}
	if f.cal.synced != 0 || f.notifier.pushes != 0 {
		t.Error("no follow-ups may run when provisioning fails")
	}
}

func TestCreateBookingLosesRace(t *testing.T) {
	f := newFixture(t)
	f.bookings.createErr = bookingRepo.ErrSlotTaken

	_, err := f.svc.CreateBooking(context.Background(), validRequest())
	assertCode(t, err, models.ErrCodeSlotUnavailable)
}

func TestCreateBookingDeferredPaymentSkipsProvisioning(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.DeferPayment = true

	result, err := f.svc.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if result.Status != models.BookingStatusPending {
		t.Errorf("status = %q, want pending", result.Status)
	}
	if result.MeetingLink != "" {
		t.Error("pending booking must not carry a meeting link")
	}
	if f.prov.calls != 0 {
		t.Errorf("provisioner calls = %d, want 0 before payment", f.prov.calls)
	}
	if f.cal.synced != 0 {
		t.Error("pending booking must not be synced to calendars")
	}
}

func TestCompletePayment(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.DeferPayment = true
	created, err := f.svc.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	result, err := f.svc.CompletePayment(context.Background(), created.BookingID, "pi_123")
	if err != nil {
		t.Fatalf("CompletePayment failed: %v", err)
	}
	if result.Status != models.BookingStatusConfirmed {
		t.Errorf("status = %q, want confirmed", result.Status)
	}
	if result.MeetingLink == "" {
		t.Error("confirmed booking must carry a meeting link")
	}
	if f.prov.calls != 1 {
		t.Errorf("provisioner calls = %d, want 1", f.prov.calls)
	}
	if f.cal.synced != 1 {
		t.Errorf("calendar sync calls = %d, want 1", f.cal.synced)
	}

	// A second completion attempt hits the state guard.
	_, err = f.svc.CompletePayment(context.Background(), created.BookingID, "pi_123")
	assertCode(t, err, models.ErrCodeInvalidState)
}

func TestCompletePaymentRejectedVerification(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.DeferPayment = true
	created, err := f.svc.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	f.verifier.err = errors.New("payment intent not succeeded")
	_, err = f.svc.CompletePayment(context.Background(), created.BookingID, "pi_bad")
	assertCode(t, err, models.ErrCodeValidation)

	stored, _ := f.bookings.GetByID(context.Background(), created.BookingID)
	if stored.Status != models.BookingStatusPending {
		t.Errorf("status = %q, booking must stay pending", stored.Status)
	}
}

func TestUpdateStatusCancellation(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	result, err := f.svc.UpdateStatus(context.Background(), created.BookingID, models.BookingStatusCancelled, "learner-1")
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if result.Status != models.BookingStatusCancelled {
		t.Errorf("status = %q, want cancelled", result.Status)
	}

	stored, _ := f.bookings.GetByID(context.Background(), created.BookingID)
	if stored.CancelledBy != "Asha" {
		t.Errorf("cancelledBy = %q, want the actor's display name", stored.CancelledBy)
	}
	if f.cal.removed != 1 {
		t.Errorf("calendar removals = %d, want 1", f.cal.removed)
	}
}

func TestUpdateStatusCannotConfirm(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.DeferPayment = true
	created, err := f.svc.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	// Neither party may confirm directly; confirmation goes through
	// CompletePayment, which verifies the charge and provisions the meeting.
	for _, actor := range []string{"learner-1", "provider-1"} {
		_, err := f.svc.UpdateStatus(context.Background(), created.BookingID, models.BookingStatusConfirmed, actor)
		assertCode(t, err, models.ErrCodeInvalidState)
	}

	stored, _ := f.bookings.GetByID(context.Background(), created.BookingID)
	if stored.Status != models.BookingStatusPending {
		t.Errorf("status = %q, booking must stay pending", stored.Status)
	}
	if stored.MeetingLink != "" || stored.PaymentRef != "" {
		t.Errorf("booking gained meeting/payment fields without paying: %+v", stored)
	}
	if f.prov.calls != 0 {
		t.Errorf("provisioner calls = %d, want 0", f.prov.calls)
	}
}

func TestUpdateStatusRejectsOutsiders(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	_, err = f.svc.UpdateStatus(context.Background(), created.BookingID, models.BookingStatusCancelled, "stranger-9")
	assertCode(t, err, models.ErrCodeUnauthorized)
}

func TestUpdateStatusRejectsIllegalTransitions(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if _, err := f.svc.UpdateStatus(context.Background(), created.BookingID, models.BookingStatusCompleted, "provider-1"); err != nil {
		t.Fatalf("confirmed -> completed should be legal: %v", err)
	}

	// completed is terminal.
	_, err = f.svc.UpdateStatus(context.Background(), created.BookingID, models.BookingStatusCancelled, "provider-1")
	assertCode(t, err, models.ErrCodeInvalidState)
}

func TestFollowUpsSurviveRequestCancellation(t *testing.T) {
	f := newFixture(t)

	// The client may disconnect the moment the booking lands; the
	// calendar/notification follow-ups still run on a live context.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.svc.CreateBooking(ctx, validRequest())
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if f.cal.synced != 1 {
		t.Fatalf("calendar sync calls = %d, want 1", f.cal.synced)
	}
	if f.cal.syncCtxErr != nil {
		t.Errorf("calendar sync ran on a dead context: %v", f.cal.syncCtxErr)
	}
	if f.notifier.pushes != 2 {
		t.Errorf("pushes = %d, want one per party", f.notifier.pushes)
	}

	cancelCtx, cancel2 := context.WithCancel(context.Background())
	cancel2()
	if _, err := f.svc.UpdateStatus(cancelCtx, result.BookingID, models.BookingStatusCancelled, "learner-1"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if f.cal.removed != 1 {
		t.Fatalf("calendar removals = %d, want 1", f.cal.removed)
	}
	if f.cal.removeCtxErr != nil {
		t.Errorf("calendar removal ran on a dead context: %v", f.cal.removeCtxErr)
	}
}

func TestGetBookingRestrictedToParties(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if _, err := f.svc.GetBooking(context.Background(), created.BookingID, "provider-1"); err != nil {
		t.Errorf("provider should read their own booking: %v", err)
	}
	_, err = f.svc.GetBooking(context.Background(), created.BookingID, "stranger-9")
	assertCode(t, err, models.ErrCodeUnauthorized)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	appErr, ok := models.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("error code = %s, want %s (%s)", appErr.Code, code, appErr.Message)
	}
}

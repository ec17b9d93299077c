package service

import (
	"context"
	"io"
	"testing"
	"time"

	"homeward/internal/auth"
	petserrors "homeward/internal/pets/errors"
	visitserrors "homeward/internal/visits/errors"
	"homeward/internal/visits/repository"
	"homeward/internal/visits/validator"
	"homeward/pkg/config"
	apperrors "homeward/pkg/errors"
	"homeward/pkg/logger"
	"homeward/pkg/model"
)

const (
	testPetID   = "64a1f0c2e4b0a1b2c3d4e5f6"
	testVisitID = "64a1f0c2e4b0a1b2c3d4e5f7"
)

type mockVisitRepo struct {
	insertFn    func(ctx context.Context, visit *model.Visit) error
	deleteFn    func(ctx context.Context, id string) error
	findByIDFn  func(ctx context.Context, id string) (*model.Visit, error)
	claimFn     func(ctx context.Context, visitID, claimantID string) error
	completeFn  func(ctx context.Context, visitID string, completion repository.Completion) error
	findScopeFn func(ctx context.Context, scope string, limit int) ([]*model.Visit, error)
	orphansFn   func(ctx context.Context, cutoff time.Time) ([]*model.Visit, error)
}

func (m *mockVisitRepo) Insert(ctx context.Context, visit *model.Visit) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, visit)
	}
	visit.ID = testVisitID
	return nil
}

func (m *mockVisitRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockVisitRepo) FindByID(ctx context.Context, id string) (*model.Visit, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, visitserrors.ErrNotFound
}

func (m *mockVisitRepo) Claim(ctx context.Context, visitID, claimantID string) error {
	if m.claimFn != nil {
		return m.claimFn(ctx, visitID, claimantID)
	}
	return nil
}

func (m *mockVisitRepo) Complete(ctx context.Context, visitID string, completion repository.Completion) error {
	if m.completeFn != nil {
		return m.completeFn(ctx, visitID, completion)
	}
	return nil
}

func (m *mockVisitRepo) FindByScope(ctx context.Context, scope string, limit int) ([]*model.Visit, error) {
	if m.findScopeFn != nil {
		return m.findScopeFn(ctx, scope, limit)
	}
	return nil, nil
}

func (m *mockVisitRepo) FindOrphanCandidates(ctx context.Context, cutoff time.Time) ([]*model.Visit, error) {
	if m.orphansFn != nil {
		return m.orphansFn(ctx, cutoff)
	}
	return nil, nil
}

type mockPetRepo struct {
	createFn      func(ctx context.Context, pet *model.Pet) error
	findByIDFn    func(ctx context.Context, id string) (*model.Pet, error)
	findStatusFn  func(ctx context.Context, status string, limit int, offset int64) ([]*model.Pet, error)
	findByIDsFn   func(ctx context.Context, ids []string) ([]*model.Pet, error)
	countFn       func(ctx context.Context, status string) (int64, error)
	deleteFn      func(ctx context.Context, id string) error
	reserveFn     func(ctx context.Context, petID, visitID string) error
	markAdoptedFn func(ctx context.Context, petID, visitID string) error
	releaseFn     func(ctx context.Context, petID string) error
}

func (m *mockPetRepo) Create(ctx context.Context, pet *model.Pet) error {
	if m.createFn != nil {
		return m.createFn(ctx, pet)
	}
	return nil
}

func (m *mockPetRepo) FindByID(ctx context.Context, id string) (*model.Pet, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return availablePet(), nil
}

func (m *mockPetRepo) FindByStatus(ctx context.Context, status string, limit int, offset int64) ([]*model.Pet, error) {
	if m.findStatusFn != nil {
		return m.findStatusFn(ctx, status, limit, offset)
	}
	return nil, nil
}

func (m *mockPetRepo) FindByIDs(ctx context.Context, ids []string) ([]*model.Pet, error) {
	if m.findByIDsFn != nil {
		return m.findByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockPetRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, status)
	}
	return 0, nil
}

func (m *mockPetRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPetRepo) Reserve(ctx context.Context, petID, visitID string) error {
	if m.reserveFn != nil {
		return m.reserveFn(ctx, petID, visitID)
	}
	return nil
}

func (m *mockPetRepo) MarkAdopted(ctx context.Context, petID, visitID string) error {
	if m.markAdoptedFn != nil {
		return m.markAdoptedFn(ctx, petID, visitID)
	}
	return nil
}

func (m *mockPetRepo) Release(ctx context.Context, petID string) error {
	if m.releaseFn != nil {
		return m.releaseFn(ctx, petID)
	}
	return nil
}

func availablePet() *model.Pet {
	return &model.Pet{
		ID:      testPetID,
		Name:    "Biscuit",
		Species: "Dog",
		Status:  model.PetAvailable,
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		VisitListLimit:    200,
		OrphanSweepMinAge: 15 * time.Minute,
		Log:               logger.New(logger.Config{Output: io.Discard}),
	}
}

func newTestService(t *testing.T, visits *mockVisitRepo, pets *mockPetRepo) VisitService {
	t.Helper()
	cfg := testConfig(t)
	return NewVisitService(visits, pets, validator.NewVisitValidator(cfg.Log), nil, cfg)
}

func employee() auth.Principal {
	return auth.Principal{
		UserID:      "64a1f0c2e4b0a1b2c3d4e5aa",
		ExternalID:  "ext-employee-1",
		DisplayName: "Dana Reviewer",
		Role:        model.RoleEmployee,
	}
}

func scheduleRequest() *model.VisitSchedule {
	offset := 240
	return &model.VisitSchedule{
		PetID:           testPetID,
		StateID:         "ny",
		PurchaserName:   "  Alice   Smith ",
		Phone:           "+1 (212) 555-0100",
		VisitAtLocal:    "2025-06-01T14:30",
		TzOffsetMinutes: &offset,
	}
}

func expectAppCode(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
	return appErr
}

func TestSchedule_Success(t *testing.T) {
	var reservedPet, reservedVisit string
	visits := &mockVisitRepo{}
	pets := &mockPetRepo{
		reserveFn: func(_ context.Context, petID, visitID string) error {
			reservedPet, reservedVisit = petID, visitID
			return nil
		},
	}

	svc := newTestService(t, visits, pets)
	visit, err := svc.Schedule(context.Background(), scheduleRequest(), employee())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if visit.Status != model.VisitOpen {
		t.Errorf("expected status OPEN, got %s", visit.Status)
	}
	if reservedPet != testPetID || reservedVisit != visit.ID {
		t.Errorf("expected reservation for (%s, %s), got (%s, %s)",
			testPetID, visit.ID, reservedPet, reservedVisit)
	}
	if visit.CreatedByID == nil || *visit.CreatedByID != employee().UserID {
		t.Errorf("expected created_by_id %s, got %v", employee().UserID, visit.CreatedByID)
	}
	if visit.PurchaserName != "Alice Smith" {
		t.Errorf("expected normalized purchaser name, got %q", visit.PurchaserName)
	}
	if visit.StateID != "NY" {
		t.Errorf("expected normalized state id NY, got %q", visit.StateID)
	}

	// 14:30 local at UTC-4 (offset 240, minutes west) is 18:30Z.
	want := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	if !visit.VisitAtUTC.Equal(want) {
		t.Errorf("expected visit_at_utc %s, got %s", want, visit.VisitAtUTC)
	}
}

func TestSchedule_ReservationLostCompensates(t *testing.T) {
	var deletedVisit string
	visits := &mockVisitRepo{
		deleteFn: func(_ context.Context, id string) error {
			deletedVisit = id
			return nil
		},
	}
	pets := &mockPetRepo{
		reserveFn: func(_ context.Context, _, _ string) error {
			return petserrors.ErrNotAvailable
		},
	}

	svc := newTestService(t, visits, pets)
	_, err := svc.Schedule(context.Background(), scheduleRequest(), employee())
	expectAppCode(t, err, apperrors.CodeConflict)

	if deletedVisit != testVisitID {
		t.Errorf("expected compensating delete of %s, got %q", testVisitID, deletedVisit)
	}
}

func TestSchedule_PetNotFound(t *testing.T) {
	pets := &mockPetRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Pet, error) {
			return nil, petserrors.ErrNotFound
		},
	}

	svc := newTestService(t, &mockVisitRepo{}, pets)
	_, err := svc.Schedule(context.Background(), scheduleRequest(), employee())
	expectAppCode(t, err, apperrors.CodeNotFound)
}

func TestSchedule_AdoptedPetConflict(t *testing.T) {
	inserted := false
	visits := &mockVisitRepo{
		insertFn: func(_ context.Context, _ *model.Visit) error {
			inserted = true
			return nil
		},
	}
	pets := &mockPetRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Pet, error) {
			pet := availablePet()
			pet.Status = model.PetAdopted
			return pet, nil
		},
	}

	svc := newTestService(t, visits, pets)
	_, err := svc.Schedule(context.Background(), scheduleRequest(), employee())
	expectAppCode(t, err, apperrors.CodeConflict)

	if inserted {
		t.Error("expected no visit insert for an adopted pet")
	}
}

func TestSchedule_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *model.VisitSchedule)
	}{
		{
			name:   "bad phone",
			mutate: func(req *model.VisitSchedule) { req.Phone = "not-a-phone!" },
		},
		{
			name:   "missing purchaser",
			mutate: func(req *model.VisitSchedule) { req.PurchaserName = "" },
		},
		{
			name: "no visit time",
			mutate: func(req *model.VisitSchedule) {
				req.VisitAtLocal = ""
				req.VisitAtUTC = ""
			},
		},
		{
			name: "local time without timezone context",
			mutate: func(req *model.VisitSchedule) {
				req.Timezone = ""
				req.TzOffsetMinutes = nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := scheduleRequest()
			tt.mutate(req)

			svc := newTestService(t, &mockVisitRepo{}, &mockPetRepo{})
			_, err := svc.Schedule(context.Background(), req, employee())
			expectAppCode(t, err, apperrors.CodeValidation)
		})
	}
}

func TestSchedule_UTCInstant(t *testing.T) {
	req := scheduleRequest()
	req.VisitAtLocal = ""
	req.TzOffsetMinutes = nil
	req.VisitAtUTC = "2025-06-01T18:30:00Z"

	svc := newTestService(t, &mockVisitRepo{}, &mockPetRepo{})
	visit, err := svc.Schedule(context.Background(), req, employee())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	want := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	if !visit.VisitAtUTC.Equal(want) {
		t.Errorf("expected visit_at_utc %s, got %s", want, visit.VisitAtUTC)
	}
	if visit.VisitAtLocal != nil {
		t.Errorf("expected no local display time, got %v", *visit.VisitAtLocal)
	}
}

func TestClaim_Success(t *testing.T) {
	var claimedBy string
	visits := &mockVisitRepo{
		claimFn: func(_ context.Context, _, claimantID string) error {
			claimedBy = claimantID
			return nil
		},
		findByIDFn: func(_ context.Context, id string) (*model.Visit, error) {
			caller := employee().UserID
			return &model.Visit{
				ID:          id,
				PetID:       testPetID,
				Status:      model.VisitClaimed,
				ClaimedByID: &caller,
			}, nil
		},
	}

	svc := newTestService(t, visits, &mockPetRepo{})
	visit, err := svc.Claim(context.Background(), testVisitID, employee())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if claimedBy != employee().UserID {
		t.Errorf("expected claimant %s, got %s", employee().UserID, claimedBy)
	}
	if visit.Status != model.VisitClaimed {
		t.Errorf("expected status CLAIMED, got %s", visit.Status)
	}
}

func TestClaim_NotOpenConflict(t *testing.T) {
	visits := &mockVisitRepo{
		claimFn: func(_ context.Context, _, _ string) error {
			return visitserrors.ErrNotOpen
		},
	}

	svc := newTestService(t, visits, &mockPetRepo{})
	_, err := svc.Claim(context.Background(), testVisitID, employee())
	expectAppCode(t, err, apperrors.CodeConflict)
}

func completionRequest(outcome string) *model.VisitCompletion {
	return &model.VisitCompletion{
		VisitID:         testVisitID,
		Outcome:         outcome,
		Comment:         "Home visit went well, fenced yard.",
		BackgroundCheck: true,
	}
}

func claimedVisit(claimant string) *model.Visit {
	return &model.Visit{
		ID:          testVisitID,
		PetID:       testPetID,
		Status:      model.VisitClaimed,
		ClaimedByID: &claimant,
	}
}

func TestComplete_PassAdoptsPet(t *testing.T) {
	var completed repository.Completion
	visits := &mockVisitRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Visit, error) {
			return claimedVisit(employee().UserID), nil
		},
		completeFn: func(_ context.Context, _ string, c repository.Completion) error {
			completed = c
			return nil
		},
	}

	var adoptedPet, adoptedVisit string
	released := false
	pets := &mockPetRepo{
		markAdoptedFn: func(_ context.Context, petID, visitID string) error {
			adoptedPet, adoptedVisit = petID, visitID
			return nil
		},
		releaseFn: func(_ context.Context, _ string) error {
			released = true
			return nil
		},
	}

	svc := newTestService(t, visits, pets)
	result, err := svc.Complete(context.Background(), completionRequest(model.OutcomePass), employee())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if !result.PetUpdated {
		t.Error("expected pet_updated true")
	}
	if adoptedPet != testPetID || adoptedVisit != testVisitID {
		t.Errorf("expected adoption of (%s, %s), got (%s, %s)",
			testPetID, testVisitID, adoptedPet, adoptedVisit)
	}
	if released {
		t.Error("did not expect a release on PASS")
	}
	if completed.CompletedBy.DisplayName != "Dana Reviewer" {
		t.Errorf("expected reviewer snapshot, got %q", completed.CompletedBy.DisplayName)
	}
	if completed.BackfillClaimedByID != nil {
		t.Error("did not expect a claimant backfill on a claimed visit")
	}
}

func TestComplete_FailReleasesPet(t *testing.T) {
	visits := &mockVisitRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Visit, error) {
			return claimedVisit(employee().UserID), nil
		},
	}

	var releasedPet string
	adopted := false
	pets := &mockPetRepo{
		releaseFn: func(_ context.Context, petID string) error {
			releasedPet = petID
			return nil
		},
		markAdoptedFn: func(_ context.Context, _, _ string) error {
			adopted = true
			return nil
		},
	}

	svc := newTestService(t, visits, pets)
	result, err := svc.Complete(context.Background(), completionRequest(model.OutcomeFail), employee())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if releasedPet != testPetID {
		t.Errorf("expected release of %s, got %q", testPetID, releasedPet)
	}
	if adopted {
		t.Error("did not expect an adoption on FAIL")
	}
	if !result.PetUpdated {
		t.Error("expected pet_updated true")
	}
}

func TestComplete_OwnershipEnforced(t *testing.T) {
	visits := &mockVisitRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Visit, error) {
			return claimedVisit("someone-else"), nil
		},
	}

	// Even an admin cannot complete a visit claimed by another employee.
	admin := employee()
	admin.Role = model.RoleAdmin

	svc := newTestService(t, visits, &mockPetRepo{})
	_, err := svc.Complete(context.Background(), completionRequest(model.OutcomePass), admin)
	expectAppCode(t, err, apperrors.CodeForbidden)
}

func TestComplete_BackgroundCheckRequired(t *testing.T) {
	loaded := false
	visits := &mockVisitRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Visit, error) {
			loaded = true
			return claimedVisit(employee().UserID), nil
		},
	}

	req := completionRequest(model.OutcomePass)
	req.BackgroundCheck = false

	svc := newTestService(t, visits, &mockPetRepo{})
	_, err := svc.Complete(context.Background(), req, employee())
	expectAppCode(t, err, apperrors.CodeValidation)

	if loaded {
		t.Error("expected rejection before any repository access")
	}
}

func TestComplete_ShortCommentRejected(t *testing.T) {
	req := completionRequest(model.OutcomePass)
	req.Comment = "  ok "

	svc := newTestService(t, &mockVisitRepo{}, &mockPetRepo{})
	_, err := svc.Complete(context.Background(), req, employee())
	expectAppCode(t, err, apperrors.CodeValidation)
}

func TestComplete_UnclaimedBackfillsClaimant(t *testing.T) {
	var completed repository.Completion
	visits := &mockVisitRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Visit, error) {
			v := claimedVisit("")
			v.Status = model.VisitOpen
			v.ClaimedByID = nil
			return v, nil
		},
		completeFn: func(_ context.Context, _ string, c repository.Completion) error {
			completed = c
			return nil
		},
	}

	svc := newTestService(t, visits, &mockPetRepo{})
	if _, err := svc.Complete(context.Background(), completionRequest(model.OutcomeFail), employee()); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if completed.BackfillClaimedByID == nil || *completed.BackfillClaimedByID != employee().UserID {
		t.Errorf("expected claimant backfill %s, got %v", employee().UserID, completed.BackfillClaimedByID)
	}
}

func TestComplete_AlreadyCompletedConflict(t *testing.T) {
	visits := &mockVisitRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Visit, error) {
			v := claimedVisit(employee().UserID)
			v.Status = model.VisitCompleted
			return v, nil
		},
	}

	svc := newTestService(t, visits, &mockPetRepo{})
	_, err := svc.Complete(context.Background(), completionRequest(model.OutcomePass), employee())
	expectAppCode(t, err, apperrors.CodeConflict)
}

func TestComplete_RaceLoserSeesConflict(t *testing.T) {
	visits := &mockVisitRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Visit, error) {
			return claimedVisit(employee().UserID), nil
		},
		completeFn: func(_ context.Context, _ string, _ repository.Completion) error {
			return visitserrors.ErrNotInProgress
		},
	}

	svc := newTestService(t, visits, &mockPetRepo{})
	_, err := svc.Complete(context.Background(), completionRequest(model.OutcomePass), employee())
	expectAppCode(t, err, apperrors.CodeConflict)
}

func TestComplete_MissingPetSucceedsWithoutUpdate(t *testing.T) {
	visits := &mockVisitRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Visit, error) {
			return claimedVisit(employee().UserID), nil
		},
	}
	pets := &mockPetRepo{
		markAdoptedFn: func(_ context.Context, _, _ string) error {
			return petserrors.ErrNotFound
		},
	}

	svc := newTestService(t, visits, pets)
	result, err := svc.Complete(context.Background(), completionRequest(model.OutcomePass), employee())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result.PetUpdated {
		t.Error("expected pet_updated false when pet is gone")
	}
}

func TestComplete_MalformedPetReferenceIsIntegrityError(t *testing.T) {
	visits := &mockVisitRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Visit, error) {
			v := claimedVisit(employee().UserID)
			v.PetID = "not-an-object-id"
			return v, nil
		},
	}
	pets := &mockPetRepo{
		markAdoptedFn: func(_ context.Context, _, _ string) error {
			return petserrors.ErrInvalidID
		},
	}

	svc := newTestService(t, visits, pets)
	_, err := svc.Complete(context.Background(), completionRequest(model.OutcomePass), employee())
	expectAppCode(t, err, apperrors.CodeIntegrity)
}

func TestList_ScopeNormalization(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		expected  string
	}{
		{"empty defaults to pending", "", repository.ScopePending},
		{"completed passes through", repository.ScopeCompleted, repository.ScopeCompleted},
		{"unknown falls back to all", "bogus", repository.ScopeAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotScope string
			var gotLimit int
			visits := &mockVisitRepo{
				findScopeFn: func(_ context.Context, scope string, limit int) ([]*model.Visit, error) {
					gotScope, gotLimit = scope, limit
					return nil, nil
				},
			}

			svc := newTestService(t, visits, &mockPetRepo{})
			if _, err := svc.List(context.Background(), tt.requested); err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if gotScope != tt.expected {
				t.Errorf("expected scope %s, got %s", tt.expected, gotScope)
			}
			if gotLimit != 200 {
				t.Errorf("expected limit 200, got %d", gotLimit)
			}
		})
	}
}

func TestList_HydratesPetDetails(t *testing.T) {
	visits := &mockVisitRepo{
		findScopeFn: func(_ context.Context, _ string, _ int) ([]*model.Visit, error) {
			return []*model.Visit{
				{ID: testVisitID, PetID: testPetID, Status: model.VisitOpen},
				{ID: "64a1f0c2e4b0a1b2c3d4e5f8", PetID: "64a1f0c2e4b0a1b2c3d4e5f9", Status: model.VisitOpen},
			}, nil
		},
	}
	pets := &mockPetRepo{
		findByIDsFn: func(_ context.Context, ids []string) ([]*model.Pet, error) {
			if len(ids) != 2 {
				t.Errorf("expected 2 distinct pet ids, got %d", len(ids))
			}
			return []*model.Pet{availablePet()}, nil
		},
	}

	svc := newTestService(t, visits, pets)
	out, err := svc.List(context.Background(), repository.ScopeOpen)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if out[0].PetName == nil || *out[0].PetName != "Biscuit" {
		t.Errorf("expected hydrated pet name, got %v", out[0].PetName)
	}
	// The second visit's pet is gone: the listing still succeeds, unhydrated.
	if out[1].PetName != nil {
		t.Errorf("expected no hydration for missing pet, got %v", *out[1].PetName)
	}
}

func TestSweepOrphans(t *testing.T) {
	orphanID := "64a1f0c2e4b0a1b2c3d4e5fb"
	healthyID := "64a1f0c2e4b0a1b2c3d4e5fc"

	visits := &mockVisitRepo{
		orphansFn: func(_ context.Context, _ time.Time) ([]*model.Visit, error) {
			return []*model.Visit{
				{ID: orphanID, PetID: testPetID, Status: model.VisitOpen},
				{ID: healthyID, PetID: testPetID, Status: model.VisitOpen},
			}, nil
		},
	}

	var deleted []string
	visits.deleteFn = func(_ context.Context, id string) error {
		deleted = append(deleted, id)
		return nil
	}

	pets := &mockPetRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Pet, error) {
			pet := availablePet()
			pet.Status = model.PetReserved
			// The reservation points at the healthy visit only.
			pet.ActiveVisitID = &healthyID
			return pet, nil
		},
	}
	svc := newTestService(t, visits, pets)
	removed, err := svc.SweepOrphans(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if removed != 1 {
		t.Errorf("expected 1 removal, got %d", removed)
	}
	if len(deleted) != 1 || deleted[0] != orphanID {
		t.Errorf("expected deletion of %s only, got %v", orphanID, deleted)
	}
}

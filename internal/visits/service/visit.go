package service

import (
	"context"
	"errors"
	"time"

	"homeward/internal/auth"
	petserrors "homeward/internal/pets/errors"
	petsrepository "homeward/internal/pets/repository"
	visitserrors "homeward/internal/visits/errors"
	"homeward/internal/visits/repository"
	"homeward/internal/visits/validator"
	"homeward/pkg/config"
	apperrors "homeward/pkg/errors"
	"homeward/pkg/kafka"
	"homeward/pkg/model"
	"homeward/pkg/sanitizer"
)

type VisitService interface {
	Schedule(ctx context.Context, req *model.VisitSchedule, principal auth.Principal) (*model.Visit, error)
	Claim(ctx context.Context, visitID string, principal auth.Principal) (*model.Visit, error)
	Complete(ctx context.Context, req *model.VisitCompletion, principal auth.Principal) (*model.VisitCompletionResult, error)
	List(ctx context.Context, scope string) ([]*model.Visit, error)
	SweepOrphans(ctx context.Context) (int, error)
}

type visitService struct {
	visits    repository.VisitRepository
	pets      petsrepository.PetRepository
	validator *validator.VisitValidator
	publisher kafka.Publisher
	cfg       *config.Config
}

func NewVisitService(
	visits repository.VisitRepository,
	pets petsrepository.PetRepository,
	validator *validator.VisitValidator,
	publisher kafka.Publisher,
	cfg *config.Config,
) VisitService {
	return &visitService{
		visits:    visits,
		pets:      pets,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// callerRef is the identity recorded on claims and ownership checks: the
// stored user id when the principal has a user record, the external id
// otherwise.
func callerRef(p auth.Principal) string {
	if p.UserID != "" {
		return p.UserID
	}
	return p.ExternalID
}

// Schedule creates an OPEN visit and reserves its pet. The reservation is a
// conditional update on the pet document; when it matches nothing the freshly
// inserted visit is deleted again so a lost race leaves no trace.
func (s *visitService) Schedule(ctx context.Context, req *model.VisitSchedule, principal auth.Principal) (*model.Visit, error) {
	req.PurchaserName = sanitizer.NormalizeName(req.PurchaserName)
	req.StateID = sanitizer.NormalizeStateID(req.StateID)
	req.Phone = sanitizer.NormalizePhone(req.Phone)
	if req.LocationNote != nil {
		note := sanitizer.TrimAndNormalize(*req.LocationNote)
		req.LocationNote = &note
	}

	if err := s.validator.ValidateSchedule(req); err != nil {
		s.cfg.Log.Warn("Visit validation failed", "error", err)
		return nil, apperrors.Validation("Visit validation failed", map[string]any{"error": err.Error()})
	}

	visitTime, err := resolveVisitTime(req)
	if err != nil {
		return nil, apperrors.Validation("Invalid visit time", map[string]any{"error": err.Error()})
	}

	// Fast-path check before any write. The conditional reservation below is
	// the actual guard; this only turns the common cases into better errors.
	pet, err := s.pets.FindByID(ctx, req.PetID)
	if err != nil {
		if errors.Is(err, petserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Pet", req.PetID)
		}
		if errors.Is(err, petserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid pet ID format")
		}
		return nil, apperrors.Internal("Failed to load pet", err)
	}
	if pet.Status == model.PetAdopted {
		return nil, apperrors.Conflict("Pet has already been adopted")
	}

	creator := callerRef(principal)
	visit := &model.Visit{
		PetID:           req.PetID,
		Status:          model.VisitOpen,
		CreatedByID:     &creator,
		VisitAtUTC:      visitTime.UTC,
		VisitAtLocal:    visitTime.Local,
		Timezone:        visitTime.Timezone,
		TzOffsetMinutes: visitTime.TzOffsetMinutes,
		StateID:         req.StateID,
		PurchaserName:   req.PurchaserName,
		Phone:           req.Phone,
		LocationNote:    req.LocationNote,
	}

	if err := s.visits.Insert(ctx, visit); err != nil {
		s.cfg.Log.Error("Failed to insert visit", "pet_id", req.PetID, "error", err)
		return nil, apperrors.Internal("Failed to schedule visit", err)
	}

	if err := s.pets.Reserve(ctx, req.PetID, visit.ID); err != nil {
		if delErr := s.visits.Delete(ctx, visit.ID); delErr != nil {
			// The orphan sweep picks this visit up later.
			s.cfg.Log.Error("Failed to delete visit after reservation failure",
				"visit_id", visit.ID, "pet_id", req.PetID, "error", delErr)
		}

		if errors.Is(err, petserrors.ErrNotAvailable) {
			s.cfg.Log.Info("Pet reservation lost", "visit_id", visit.ID, "pet_id", req.PetID)
			return nil, apperrors.Conflict("Pet not available")
		}
		s.cfg.Log.Error("Failed to reserve pet", "visit_id", visit.ID, "pet_id", req.PetID, "error", err)
		return nil, apperrors.Internal("Failed to reserve pet", err)
	}

	s.publishEvent(ctx, kafka.EventVisitScheduled, visit.ID, map[string]any{
		"visit_id":     visit.ID,
		"pet_id":       visit.PetID,
		"visit_at_utc": visit.VisitAtUTC.Format(time.RFC3339),
	})

	s.cfg.Log.Info("Visit scheduled", "visit_id", visit.ID, "pet_id", visit.PetID)
	return visit, nil
}

// Claim assigns an OPEN visit to the caller. The write is conditional on the
// OPEN status, so of two concurrent claimers exactly one wins.
func (s *visitService) Claim(ctx context.Context, visitID string, principal auth.Principal) (*model.Visit, error) {
	if visitID == "" {
		return nil, apperrors.InvalidInput("Visit ID cannot be empty")
	}

	claimant := callerRef(principal)
	if err := s.visits.Claim(ctx, visitID, claimant); err != nil {
		if errors.Is(err, visitserrors.ErrNotOpen) {
			return nil, apperrors.Conflict("Visit not open")
		}
		if errors.Is(err, visitserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid visit ID format")
		}
		s.cfg.Log.Error("Failed to claim visit", "visit_id", visitID, "error", err)
		return nil, apperrors.Internal("Failed to claim visit", err)
	}

	visit, err := s.visits.FindByID(ctx, visitID)
	if err != nil {
		s.cfg.Log.Error("Failed to load visit after claim", "visit_id", visitID, "error", err)
		return nil, apperrors.Internal("Failed to load claimed visit", err)
	}

	s.publishEvent(ctx, kafka.EventVisitClaimed, visitID, map[string]any{
		"visit_id":   visitID,
		"pet_id":     visit.PetID,
		"claimed_by": claimant,
	})

	s.cfg.Log.Info("Visit claimed", "visit_id", visitID, "claimed_by", claimant)
	return visit, nil
}

// Complete records the review outcome and moves the pet out of RESERVED:
// PASS marks it ADOPTED, FAIL returns it to AVAILABLE. The visit write is the
// commit point; a pet missing afterwards is reported, not rolled back.
func (s *visitService) Complete(ctx context.Context, req *model.VisitCompletion, principal auth.Principal) (*model.VisitCompletionResult, error) {
	req.Comment = sanitizer.NormalizeComment(req.Comment)

	if err := s.validator.ValidateCompletion(req); err != nil {
		s.cfg.Log.Warn("Completion validation failed", "visit_id", req.VisitID, "error", err)
		return nil, apperrors.Validation("Completion validation failed", map[string]any{"error": err.Error()})
	}

	if !req.BackgroundCheck {
		return nil, apperrors.Validation("Background check must be confirmed before completing a visit", nil)
	}

	visit, err := s.visits.FindByID(ctx, req.VisitID)
	if err != nil {
		if errors.Is(err, visitserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Visit", req.VisitID)
		}
		if errors.Is(err, visitserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid visit ID format")
		}
		return nil, apperrors.Internal("Failed to load visit", err)
	}

	if visit.Status == model.VisitCompleted {
		return nil, apperrors.Conflict("Visit already completed")
	}

	caller := callerRef(principal)
	if visit.ClaimedByID != nil && *visit.ClaimedByID != caller {
		// Admins are not exempt: only the claimant may record the outcome.
		return nil, apperrors.Forbidden("Visit can only be completed by the employee who claimed it")
	}

	completion := repository.Completion{
		Outcome:     req.Outcome,
		Comment:     req.Comment,
		CompletedAt: time.Now().UTC().Truncate(time.Millisecond),
		CompletedBy: model.CompletedBy{
			ExternalID:  principal.ExternalID,
			DisplayName: principal.ReviewerName(),
		},
	}
	if principal.UserID != "" {
		userID := principal.UserID
		completion.CompletedBy.UserID = &userID
	}
	if visit.ClaimedByID == nil {
		// Completing an unclaimed visit records the completer as claimant.
		completion.BackfillClaimedByID = &caller
	}

	if err := s.visits.Complete(ctx, req.VisitID, completion); err != nil {
		if errors.Is(err, visitserrors.ErrNotInProgress) {
			return nil, apperrors.Conflict("Visit not in progress")
		}
		s.cfg.Log.Error("Failed to complete visit", "visit_id", req.VisitID, "error", err)
		return nil, apperrors.Internal("Failed to complete visit", err)
	}

	result := &model.VisitCompletionResult{
		VisitID: req.VisitID,
		Outcome: req.Outcome,
		PetID:   visit.PetID,
	}

	petUpdated, err := s.reconcilePet(ctx, visit, req.Outcome)
	if err != nil {
		return nil, err
	}
	result.PetUpdated = petUpdated

	s.publishEvent(ctx, kafka.EventVisitCompleted, req.VisitID, map[string]any{
		"visit_id":    req.VisitID,
		"pet_id":      visit.PetID,
		"outcome":     req.Outcome,
		"pet_updated": petUpdated,
	})
	if req.Outcome == model.OutcomePass && petUpdated {
		s.publishEvent(ctx, kafka.EventPetAdopted, visit.PetID, map[string]any{
			"pet_id":   visit.PetID,
			"visit_id": req.VisitID,
		})
	}

	s.cfg.Log.Info("Visit completed",
		"visit_id", req.VisitID, "outcome", req.Outcome, "pet_id", visit.PetID, "pet_updated", petUpdated)
	return result, nil
}

// reconcilePet applies the pet-side half of a completed visit. The visit is
// already COMPLETED at this point: a pet document that simply vanished is a
// warning, anything else wrong with the reference is a data integrity fault.
func (s *visitService) reconcilePet(ctx context.Context, visit *model.Visit, outcome string) (bool, error) {
	if visit.PetID == "" {
		return false, apperrors.Integrity("Completed visit has no pet reference", map[string]any{
			"visit_id": visit.ID,
		})
	}

	var err error
	if outcome == model.OutcomePass {
		err = s.pets.MarkAdopted(ctx, visit.PetID, visit.ID)
	} else {
		err = s.pets.Release(ctx, visit.PetID)
	}

	if err == nil {
		return true, nil
	}
	if errors.Is(err, petserrors.ErrNotFound) {
		s.cfg.Log.Warn("Pet missing during visit completion",
			"visit_id", visit.ID, "pet_id", visit.PetID, "outcome", outcome)
		return false, nil
	}
	if errors.Is(err, petserrors.ErrInvalidID) {
		return false, apperrors.Integrity("Completed visit references a malformed pet ID", map[string]any{
			"visit_id": visit.ID,
			"pet_id":   visit.PetID,
		})
	}

	s.cfg.Log.Error("Failed to update pet after visit completion",
		"visit_id", visit.ID, "pet_id", visit.PetID, "outcome", outcome, "error", err)
	return false, apperrors.Integrity("Visit completed but pet update failed", map[string]any{
		"visit_id": visit.ID,
		"pet_id":   visit.PetID,
	})
}

// List returns visits for the requested scope, newest first, hydrated with
// pet display fields. An empty scope means pending; an unrecognized one falls
// back to all.
func (s *visitService) List(ctx context.Context, scope string) ([]*model.Visit, error) {
	scope = normalizeScope(scope)

	visits, err := s.visits.FindByScope(ctx, scope, s.cfg.VisitListLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to list visits", "scope", scope, "error", err)
		return nil, apperrors.Internal("Failed to retrieve visits", err)
	}

	s.hydratePets(ctx, visits)
	return visits, nil
}

func normalizeScope(scope string) string {
	switch scope {
	case repository.ScopePending, repository.ScopeCompleted, repository.ScopeOpen, repository.ScopeClaimed, repository.ScopeAll:
		return scope
	case "":
		return repository.ScopePending
	default:
		return repository.ScopeAll
	}
}

// hydratePets fills the denormalized pet display fields from the current pet
// documents. Hydration is best effort: a failed lookup leaves the mirrors
// empty rather than failing the listing.
func (s *visitService) hydratePets(ctx context.Context, visits []*model.Visit) {
	if len(visits) == 0 {
		return
	}

	seen := make(map[string]struct{}, len(visits))
	ids := make([]string, 0, len(visits))
	for _, v := range visits {
		if _, ok := seen[v.PetID]; ok {
			continue
		}
		seen[v.PetID] = struct{}{}
		ids = append(ids, v.PetID)
	}

	pets, err := s.pets.FindByIDs(ctx, ids)
	if err != nil {
		s.cfg.Log.Warn("Failed to hydrate pet details for visits", "error", err)
		return
	}

	byID := make(map[string]*model.Pet, len(pets))
	for _, p := range pets {
		byID[p.ID] = p
	}

	for _, v := range visits {
		pet, ok := byID[v.PetID]
		if !ok {
			continue
		}
		name := pet.Name
		species := pet.Species
		v.PetName = &name
		v.PetSpecies = &species
		v.PetBreed = pet.Breed
		v.PetAge = pet.Age
	}
}

// SweepOrphans deletes OPEN, never-claimed visits whose pet reservation never
// took hold: leftovers of a schedule whose compensating delete itself failed.
// A candidate is only removed when its pet is gone or reserved for a
// different visit.
func (s *visitService) SweepOrphans(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.cfg.OrphanSweepMinAge)

	candidates, err := s.visits.FindOrphanCandidates(ctx, cutoff)
	if err != nil {
		s.cfg.Log.Error("Failed to find orphan candidates", "error", err)
		return 0, apperrors.Internal("Failed to find orphan candidates", err)
	}

	removed := 0
	for _, visit := range candidates {
		orphan, err := s.isOrphan(ctx, visit)
		if err != nil {
			s.cfg.Log.Warn("Skipping orphan candidate", "visit_id", visit.ID, "error", err)
			continue
		}
		if !orphan {
			continue
		}

		if err := s.visits.Delete(ctx, visit.ID); err != nil {
			if !errors.Is(err, visitserrors.ErrNotFound) {
				s.cfg.Log.Warn("Failed to delete orphan visit", "visit_id", visit.ID, "error", err)
			}
			continue
		}

		s.cfg.Log.Info("Orphan visit removed", "visit_id", visit.ID, "pet_id", visit.PetID)
		removed++
	}

	return removed, nil
}

func (s *visitService) isOrphan(ctx context.Context, visit *model.Visit) (bool, error) {
	pet, err := s.pets.FindByID(ctx, visit.PetID)
	if err != nil {
		if errors.Is(err, petserrors.ErrNotFound) || errors.Is(err, petserrors.ErrInvalidID) {
			return true, nil
		}
		return false, err
	}
	return pet.ActiveVisitID == nil || *pet.ActiveVisitID != visit.ID, nil
}

func (s *visitService) publishEvent(ctx context.Context, eventType, key string, payload map[string]any) {
	if s.publisher == nil {
		return
	}

	msg, err := kafka.NewMessage().
		WithKey(key).
		WithEventType(eventType).
		WithSource("visits").
		WithValue(payload).
		Build()
	if err != nil {
		s.cfg.Log.Warn("Failed to build lifecycle event", "event_type", eventType, "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish lifecycle event", "event_type", eventType, "key", key, "error", err)
	}
}

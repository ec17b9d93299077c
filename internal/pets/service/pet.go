package service

import (
	"context"
	"errors"
	"sync"

	petserrors "homeward/internal/pets/errors"
	"homeward/internal/pets/repository"
	"homeward/internal/pets/validator"
	"homeward/pkg/config"
	apperrors "homeward/pkg/errors"
	"homeward/pkg/kafka"
	"homeward/pkg/model"
	"homeward/pkg/sanitizer"
)

type PetService interface {
	Create(ctx context.Context, create *model.PetCreate) (*model.Pet, error)
	GetByID(ctx context.Context, id string) (*model.Pet, error)
	GetAll(ctx context.Context, statusFilter string, limit int, offset int64) ([]*model.Pet, int64, error)
	Delete(ctx context.Context, id string) error
}

type petService struct {
	repo      repository.PetRepository
	validator *validator.PetValidator
	publisher kafka.Publisher
	cfg       *config.Config
}

func NewPetService(
	repo repository.PetRepository,
	validator *validator.PetValidator,
	publisher kafka.Publisher,
	cfg *config.Config,
) PetService {
	return &petService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *petService) Create(ctx context.Context, create *model.PetCreate) (*model.Pet, error) {
	create.Name = sanitizer.NormalizeName(create.Name)
	create.Species = sanitizer.TrimAndNormalize(create.Species)

	if err := s.validator.ValidateCreate(create); err != nil {
		s.cfg.Log.Warn("Pet validation failed", "error", err)
		return nil, apperrors.Validation("Pet validation failed", map[string]any{"error": err.Error()})
	}

	// Client-submitted status values are never honored: every new pet enters
	// the pool AVAILABLE with no active visit.
	pet := &model.Pet{
		Name:     create.Name,
		Species:  create.Species,
		Breed:    create.Breed,
		Age:      create.Age,
		Notes:    create.Notes,
		PhotoURL: create.PhotoURL,
		Status:   model.PetAvailable,
	}

	if err := s.repo.Create(ctx, pet); err != nil {
		s.cfg.Log.Error("Failed to create pet", "error", err)
		return nil, apperrors.Internal("Failed to create pet", err)
	}

	s.publishEvent(ctx, kafka.EventPetCreated, pet.ID, map[string]any{
		"pet_id":  pet.ID,
		"name":    pet.Name,
		"species": pet.Species,
	})

	s.cfg.Log.Info("Pet created successfully", "id", pet.ID, "name", pet.Name, "species", pet.Species)
	return pet, nil
}

func (s *petService) GetByID(ctx context.Context, id string) (*model.Pet, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Pet ID cannot be empty")
	}

	pet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, petserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Pet", id)
		}
		if errors.Is(err, petserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid pet ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve pet", err)
	}

	return pet, nil
}

func (s *petService) GetAll(ctx context.Context, statusFilter string, limit int, offset int64) ([]*model.Pet, int64, error) {
	if statusFilter != "" &&
		statusFilter != model.PetAvailable &&
		statusFilter != model.PetReserved &&
		statusFilter != model.PetAdopted {
		return nil, 0, apperrors.InvalidInput("Invalid status filter: " + statusFilter)
	}

	var count int64
	var pets []*model.Pet
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByStatus(ctx, statusFilter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count pets", "error", errCount)
			errCount = apperrors.Internal("Failed to count pets", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		pets, errFind = s.repo.FindByStatus(ctx, statusFilter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list pets", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve pets", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return pets, count, nil
}

func (s *petService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Pet ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, petserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Pet", id)
		}
		if errors.Is(err, petserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid pet ID format")
		}
		s.cfg.Log.Error("Failed to delete pet", "id", id, "error", err)
		return apperrors.Internal("Failed to delete pet", err)
	}

	s.publishEvent(ctx, kafka.EventPetDeleted, id, map[string]any{"pet_id": id})

	s.cfg.Log.Info("Pet deleted successfully", "id", id)
	return nil
}

// publishEvent emits a lifecycle event best effort: failures are logged and
// never surface to the caller.
func (s *petService) publishEvent(ctx context.Context, eventType, key string, payload map[string]any) {
	if s.publisher == nil {
		return
	}

	msg, err := kafka.NewMessage().
		WithKey(key).
		WithEventType(eventType).
		WithSource("pets").
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

package service

import (
	"context"
	"errors"
	"sync"

	userserrors "homeward/internal/users/errors"
	"homeward/internal/users/repository"
	"homeward/internal/users/validator"
	"homeward/pkg/config"
	apperrors "homeward/pkg/errors"
	"homeward/pkg/model"
	"homeward/pkg/sanitizer"
)

type UserService interface {
	GrantEmployee(ctx context.Context, grant *model.EmployeeGrant) error
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, int64, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(repo repository.UserRepository, validator *validator.UserValidator, cfg *config.Config) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *userService) GrantEmployee(ctx context.Context, grant *model.EmployeeGrant) error {
	grant.ExternalID = sanitizer.TrimAndNormalize(grant.ExternalID)
	grant.DisplayName = sanitizer.NormalizeName(grant.DisplayName)

	if err := s.validator.ValidateGrant(grant); err != nil {
		s.cfg.Log.Warn("Employee grant validation failed", "error", err)
		return apperrors.Validation("Invalid employee grant", map[string]any{"error": err.Error()})
	}

	if err := s.repo.UpsertEmployee(ctx, grant.ExternalID, grant.DisplayName); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateExternalID) {
			return apperrors.Conflict("External id already registered")
		}
		s.cfg.Log.Error("Failed to grant employee role", "external_id", grant.ExternalID, "error", err)
		return apperrors.Internal("Failed to grant employee role", err)
	}

	s.cfg.Log.Info("Employee role granted", "external_id", grant.ExternalID)
	return nil
}

func (s *userService) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	if externalID == "" {
		return nil, apperrors.InvalidInput("External id cannot be empty")
	}

	user, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", externalID)
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return user, nil
}

func (s *userService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, int64, error) {
	var count int64
	var users []*model.User
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count users", "error", errCount)
			errCount = apperrors.Internal("Failed to count users", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		users, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list users", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve users", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return users, count, nil
}

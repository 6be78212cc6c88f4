package service

import (
	"context"
	"errors"
	"fmt"

	phototypeserrors "konica/internal/phototypes/errors"
	"konica/internal/phototypes/repository"
	"konica/internal/phototypes/validator"
	"konica/pkg/config"
	apperrors "konica/pkg/errors"
	"konica/pkg/model"
	"konica/pkg/sanitizer"
)

type TypeService interface {
	Create(ctx context.Context, t *model.TypePhotographie) error
	GetByID(ctx context.Context, id string) (*model.TypePhotographie, error)
	GetAll(ctx context.Context, includeInactive bool) ([]*model.TypePhotographie, error)
	Update(ctx context.Context, id string, updates *model.TypePhotographieUpdate) (*model.TypePhotographie, error)
	Delete(ctx context.Context, id string) error
}

type typeService struct {
	repo      repository.TypeRepository
	validator *validator.TypeValidator
	cfg       *config.Config
}

func NewTypeService(repo repository.TypeRepository, validator *validator.TypeValidator, cfg *config.Config) TypeService {
	return &typeService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *typeService) Create(ctx context.Context, t *model.TypePhotographie) error {
	s.sanitize(t)
	if t.IsActive == nil {
		active := true
		t.IsActive = &active
	}

	if err := s.validator.Validate(t); err != nil {
		s.cfg.Log.Warn("Photography type validation failed", "name", t.Name, "error", err)
		return apperrors.Validation("Photography type validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, phototypeserrors.ErrDuplicateName) {
			return apperrors.Conflict(fmt.Sprintf("Photography type %q already exists", t.Name))
		}
		s.cfg.Log.Error("Failed to create photography type", "name", t.Name, "error", err)
		return apperrors.Internal("Failed to create photography type", err)
	}

	s.cfg.Log.Info("Photography type created successfully", "id", t.ID, "name", t.Name)
	return nil
}

func (s *typeService) GetByID(ctx context.Context, id string) (*model.TypePhotographie, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Photography type ID cannot be empty")
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, phototypeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Photography type", id)
		}
		if errors.Is(err, phototypeserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid photography type ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve photography type", err)
	}

	return t, nil
}

func (s *typeService) GetAll(ctx context.Context, includeInactive bool) ([]*model.TypePhotographie, error) {
	types, err := s.repo.FindAll(ctx, !includeInactive)
	if err != nil {
		s.cfg.Log.Error("Failed to list photography types", "error", err)
		return nil, apperrors.Internal("Failed to retrieve photography types", err)
	}
	return types, nil
}

func (s *typeService) Update(ctx context.Context, id string, updates *model.TypePhotographieUpdate) (*model.TypePhotographie, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Photography type ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Photography type update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.merge(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		return nil, apperrors.Validation("Photography type validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, phototypeserrors.ErrDuplicateName) {
			return nil, apperrors.Conflict(fmt.Sprintf("Photography type %q already exists", merged.Name))
		}
		if errors.Is(err, phototypeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Photography type", id)
		}
		s.cfg.Log.Error("Failed to update photography type", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update photography type", err)
	}

	s.cfg.Log.Info("Photography type updated successfully", "id", id)
	return merged, nil
}

func (s *typeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Photography type ID cannot be empty")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, phototypeserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Photography type", id)
		}
		if errors.Is(err, phototypeserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid photography type ID format")
		}
		s.cfg.Log.Error("Failed to delete photography type", "id", id, "error", err)
		return apperrors.Internal("Failed to delete photography type", err)
	}

	s.cfg.Log.Info("Photography type deactivated", "id", id)
	return nil
}

func (s *typeService) sanitize(t *model.TypePhotographie) {
	t.Name = sanitizer.SanitizeText(t.Name)
	t.Description = sanitizer.SanitizeText(t.Description)
	if t.Photo != "" {
		t.Photo = sanitizer.SanitizeURL(t.Photo)
	}
}

func (s *typeService) merge(existing *model.TypePhotographie, updates *model.TypePhotographieUpdate) *model.TypePhotographie {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Photo != nil {
		merged.Photo = *updates.Photo
	}
	if updates.IsActive != nil {
		merged.IsActive = updates.IsActive
	}

	return &merged
}

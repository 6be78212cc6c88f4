package service

import (
	"context"
	"errors"

	extraserrors "konica/internal/extraservices/errors"
	"konica/internal/extraservices/repository"
	"konica/internal/extraservices/validator"
	"konica/pkg/config"
	apperrors "konica/pkg/errors"
	"konica/pkg/model"
	"konica/pkg/sanitizer"
)

type ExtraServiceService interface {
	Create(ctx context.Context, svc *model.ExtraService) error
	GetByID(ctx context.Context, id string) (*model.ExtraService, error)
	GetAll(ctx context.Context, includeInactive bool) ([]*model.ExtraService, error)
	Update(ctx context.Context, id string, updates *model.ExtraServiceUpdate) (*model.ExtraService, error)
	Delete(ctx context.Context, id string) error
}

type extraServiceService struct {
	repo      repository.ExtraServiceRepository
	validator *validator.ExtraServiceValidator
	cfg       *config.Config
}

func NewExtraServiceService(repo repository.ExtraServiceRepository, validator *validator.ExtraServiceValidator, cfg *config.Config) ExtraServiceService {
	return &extraServiceService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *extraServiceService) Create(ctx context.Context, svc *model.ExtraService) error {
	s.sanitize(svc)
	if svc.IsActive == nil {
		active := true
		svc.IsActive = &active
	}

	if err := s.validator.Validate(svc); err != nil {
		s.cfg.Log.Warn("Extra service validation failed", "name", svc.Name, "error", err)
		return apperrors.Validation("Extra service validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		s.cfg.Log.Error("Failed to create extra service", "name", svc.Name, "error", err)
		return apperrors.Internal("Failed to create extra service", err)
	}

	s.cfg.Log.Info("Extra service created successfully", "id", svc.ID, "name", svc.Name)
	return nil
}

func (s *extraServiceService) GetByID(ctx context.Context, id string) (*model.ExtraService, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Extra service ID cannot be empty")
	}

	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, extraserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Extra service", id)
		}
		if errors.Is(err, extraserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid extra service ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve extra service", err)
	}

	return svc, nil
}

func (s *extraServiceService) GetAll(ctx context.Context, includeInactive bool) ([]*model.ExtraService, error) {
	services, err := s.repo.FindAll(ctx, !includeInactive)
	if err != nil {
		s.cfg.Log.Error("Failed to list extra services", "error", err)
		return nil, apperrors.Internal("Failed to retrieve extra services", err)
	}
	return services, nil
}

func (s *extraServiceService) Update(ctx context.Context, id string, updates *model.ExtraServiceUpdate) (*model.ExtraService, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Extra service ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Extra service update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.merge(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		return nil, apperrors.Validation("Extra service validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, extraserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Extra service", id)
		}
		s.cfg.Log.Error("Failed to update extra service", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update extra service", err)
	}

	s.cfg.Log.Info("Extra service updated successfully", "id", id)
	return merged, nil
}

func (s *extraServiceService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Extra service ID cannot be empty")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, extraserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Extra service", id)
		}
		if errors.Is(err, extraserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid extra service ID format")
		}
		s.cfg.Log.Error("Failed to delete extra service", "id", id, "error", err)
		return apperrors.Internal("Failed to delete extra service", err)
	}

	s.cfg.Log.Info("Extra service deactivated", "id", id)
	return nil
}

func (s *extraServiceService) sanitize(svc *model.ExtraService) {
	svc.Name = sanitizer.SanitizeText(svc.Name)
	svc.Description = sanitizer.SanitizeText(svc.Description)
	if svc.Photo != "" {
		svc.Photo = sanitizer.SanitizeURL(svc.Photo)
	}
}

func (s *extraServiceService) merge(existing *model.ExtraService, updates *model.ExtraServiceUpdate) *model.ExtraService {
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

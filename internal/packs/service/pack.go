package service

import (
	"context"
	"errors"

	packserrors "konica/internal/packs/errors"
	"konica/internal/packs/repository"
	"konica/internal/packs/validator"
	"konica/pkg/config"
	apperrors "konica/pkg/errors"
	"konica/pkg/model"
	"konica/pkg/sanitizer"
)

type PackService interface {
	Create(ctx context.Context, pack *model.Pack) error
	GetByID(ctx context.Context, id string) (*model.Pack, error)
	GetAll(ctx context.Context, includeInactive bool) ([]*model.Pack, error)
	Update(ctx context.Context, id string, updates *model.PackUpdate) (*model.Pack, error)
	Delete(ctx context.Context, id string) error
}

type packService struct {
	repo      repository.PackRepository
	validator *validator.PackValidator
	cfg       *config.Config
}

func NewPackService(repo repository.PackRepository, validator *validator.PackValidator, cfg *config.Config) PackService {
	return &packService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *packService) Create(ctx context.Context, pack *model.Pack) error {
	s.sanitize(pack)
	s.applyDefaults(pack)

	if err := s.validator.Validate(pack); err != nil {
		s.cfg.Log.Warn("Pack validation failed", "name", pack.Name, "error", err)
		return apperrors.Validation("Pack validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, pack); err != nil {
		s.cfg.Log.Error("Failed to create pack", "name", pack.Name, "error", err)
		return apperrors.Internal("Failed to create pack", err)
	}

	s.cfg.Log.Info("Pack created successfully", "id", pack.ID, "name", pack.Name, "price", pack.Price)
	return nil
}

func (s *packService) GetByID(ctx context.Context, id string) (*model.Pack, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Pack ID cannot be empty")
	}

	pack, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, packserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Pack", id)
		}
		if errors.Is(err, packserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid pack ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve pack", err)
	}

	return pack, nil
}

func (s *packService) GetAll(ctx context.Context, includeInactive bool) ([]*model.Pack, error) {
	packs, err := s.repo.FindAll(ctx, !includeInactive)
	if err != nil {
		s.cfg.Log.Error("Failed to list packs", "error", err)
		return nil, apperrors.Internal("Failed to retrieve packs", err)
	}
	return packs, nil
}

func (s *packService) Update(ctx context.Context, id string, updates *model.PackUpdate) (*model.Pack, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Pack ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Pack update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.merge(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		return nil, apperrors.Validation("Pack validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, packserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Pack", id)
		}
		s.cfg.Log.Error("Failed to update pack", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update pack", err)
	}

	s.cfg.Log.Info("Pack updated successfully", "id", id)
	return merged, nil
}

// Delete is a soft delete: the pack is deactivated, never removed, so
// reservations that reference it stay intact.
func (s *packService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Pack ID cannot be empty")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, packserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Pack", id)
		}
		if errors.Is(err, packserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid pack ID format")
		}
		s.cfg.Log.Error("Failed to delete pack", "id", id, "error", err)
		return apperrors.Internal("Failed to delete pack", err)
	}

	s.cfg.Log.Info("Pack deactivated", "id", id)
	return nil
}

// --- Helpers ---

func (s *packService) sanitize(p *model.Pack) {
	p.Name = sanitizer.SanitizeText(p.Name)
	p.Description = sanitizer.SanitizeText(p.Description)
	p.Features = sanitizer.SanitizeSlice(p.Features, sanitizer.SanitizeText)
	if p.Photo != "" {
		p.Photo = sanitizer.SanitizeURL(p.Photo)
	}
}

func (s *packService) applyDefaults(p *model.Pack) {
	if p.IsActive == nil {
		active := true
		p.IsActive = &active
	}
}

func (s *packService) merge(existing *model.Pack, updates *model.PackUpdate) *model.Pack {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Features != nil {
		merged.Features = *updates.Features
	}
	if updates.Photo != nil {
		merged.Photo = *updates.Photo
	}
	if updates.IsActive != nil {
		merged.IsActive = updates.IsActive
	}

	return &merged
}

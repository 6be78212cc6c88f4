package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	userserrors "konica/internal/users/errors"
	"konica/internal/users/repository"
	"konica/internal/users/validator"
	"konica/pkg/config"
	apperrors "konica/pkg/errors"
	"konica/pkg/model"
	"konica/pkg/sanitizer"
)

type UserService interface {
	Create(ctx context.Context, req *model.NewUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetAll(ctx context.Context, includeInactive bool) ([]*model.User, error)
	GetEmployees(ctx context.Context) ([]*model.User, error)
	Delete(ctx context.Context, id string) error
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

func (s *userService) Create(ctx context.Context, req *model.NewUserRequest) (*model.User, error) {
	req.Username = sanitizer.SanitizeText(req.Username)
	req.FullName = sanitizer.SanitizeText(req.FullName)

	if err := s.validator.ValidateNew(req); err != nil {
		s.cfg.Log.Warn("User validation failed", "username", req.Username, "error", err)
		return nil, apperrors.Validation("User validation failed", map[string]any{"error": err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "username", req.Username, "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	active := true
	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     &active,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateUsername) {
			return nil, apperrors.Conflict(fmt.Sprintf("Username %q is already taken", req.Username))
		}
		s.cfg.Log.Error("Failed to create user", "username", req.Username, "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created successfully", "id", user.ID, "username", user.Username, "role", user.Role)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return user, nil
}

func (s *userService) GetAll(ctx context.Context, includeInactive bool) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx, !includeInactive)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	return users, nil
}

func (s *userService) GetEmployees(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindByRole(ctx, model.RoleEmployee)
	if err != nil {
		s.cfg.Log.Error("Failed to list employees", "error", err)
		return nil, apperrors.Internal("Failed to retrieve employees", err)
	}
	return users, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to deactivate user", "id", id, "error", err)
		return apperrors.Internal("Failed to deactivate user", err)
	}

	s.cfg.Log.Info("User deactivated", "id", id)
	return nil
}

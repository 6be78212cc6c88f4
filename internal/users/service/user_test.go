package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	userserrors "konica/internal/users/errors"
	"konica/internal/users/validator"
	"konica/pkg/config"
	apperrors "konica/pkg/errors"
	"konica/pkg/logger"
	"konica/pkg/model"
)

type mockUserRepository struct {
	createFunc     func(ctx context.Context, u *model.User) error
	findByIDFunc   func(ctx context.Context, id string) (*model.User, error)
	findByRoleFunc func(ctx context.Context, role string) ([]*model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	u.ID = "665f1c2a9b3e4d5a6f7b8c9d"
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.User{ID: id, Username: "amira", Role: model.RoleEmployee}, nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindByRole(ctx context.Context, role string) ([]*model.User, error) {
	if m.findByRoleFunc != nil {
		return m.findByRoleFunc(ctx, role)
	}
	return []*model.User{}, nil
}

func (m *mockUserRepository) FindAll(ctx context.Context, activeOnly bool) ([]*model.User, error) {
	return []*model.User{}, nil
}

func (m *mockUserRepository) SoftDelete(ctx context.Context, id string) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func TestCreate_HashesPassword(t *testing.T) {
	var stored *model.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, u *model.User) error {
			stored = u
			return nil
		},
	}

	svc := NewUserService(repo, validator.NewUserValidator(), testConfig())
	user, err := svc.Create(context.Background(), &model.NewUserRequest{
		Username: "amira",
		Password: "s3cret-password",
		Role:     model.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.PasswordHash == "s3cret-password" {
		t.Fatal("password must never be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-password")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if user.IsActive == nil || !*user.IsActive {
		t.Error("new user must default to active")
	}
}

func TestCreate_ShortPasswordRejected(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, validator.NewUserValidator(), testConfig())
	_, err := svc.Create(context.Background(), &model.NewUserRequest{
		Username: "amira",
		Password: "short",
		Role:     model.RoleEmployee,
	})

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeValidation)
	}
}

func TestCreate_DuplicateUsernameConflicts(t *testing.T) {
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, u *model.User) error {
			return userserrors.ErrDuplicateUsername
		},
	}

	svc := NewUserService(repo, validator.NewUserValidator(), testConfig())
	_, err := svc.Create(context.Background(), &model.NewUserRequest{
		Username: "amira",
		Password: "s3cret-password",
		Role:     model.RoleAdmin,
	})

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeConflict)
	}
}

func TestGetEmployees_FiltersByRole(t *testing.T) {
	var requestedRole string
	repo := &mockUserRepository{
		findByRoleFunc: func(ctx context.Context, role string) ([]*model.User, error) {
			requestedRole = role
			return []*model.User{{Username: "amira", Role: role}}, nil
		},
	}

	svc := NewUserService(repo, validator.NewUserValidator(), testConfig())
	users, err := svc.GetEmployees(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if requestedRole != model.RoleEmployee {
		t.Errorf("role = %q, want %q", requestedRole, model.RoleEmployee)
	}
	if len(users) != 1 {
		t.Errorf("users = %d, want 1", len(users))
	}
}

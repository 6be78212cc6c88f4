package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	phototypeserrors "konica/internal/phototypes/errors"
	"konica/internal/phototypes/validator"
	"konica/pkg/config"
	apperrors "konica/pkg/errors"
	"konica/pkg/logger"
	"konica/pkg/model"
)

type mockTypeRepository struct {
	createFunc     func(ctx context.Context, t *model.TypePhotographie) error
	findByIDFunc   func(ctx context.Context, id string) (*model.TypePhotographie, error)
	findAllFunc    func(ctx context.Context, activeOnly bool) ([]*model.TypePhotographie, error)
	updateFunc     func(ctx context.Context, id string, t *model.TypePhotographie) error
	softDeleteFunc func(ctx context.Context, id string) error
}

func (m *mockTypeRepository) Create(ctx context.Context, t *model.TypePhotographie) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, t)
	}
	t.ID = "665f1c2a9b3e4d5a6f7b8c9d"
	return nil
}

func (m *mockTypeRepository) FindByID(ctx context.Context, id string) (*model.TypePhotographie, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.TypePhotographie{ID: id, Name: "Mariage"}, nil
}

func (m *mockTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]*model.TypePhotographie, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, activeOnly)
	}
	return []*model.TypePhotographie{}, nil
}

func (m *mockTypeRepository) Update(ctx context.Context, id string, t *model.TypePhotographie) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, t)
	}
	return nil
}

func (m *mockTypeRepository) SoftDelete(ctx context.Context, id string) error {
	if m.softDeleteFunc != nil {
		return m.softDeleteFunc(ctx, id)
	}
	return nil
}

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

func TestCreate_DuplicateNameConflicts(t *testing.T) {
	repo := &mockTypeRepository{
		createFunc: func(ctx context.Context, typ *model.TypePhotographie) error {
			return fmt.Errorf("insert: %w", phototypeserrors.ErrDuplicateName)
		},
	}

	svc := NewTypeService(repo, validator.NewTypeValidator(), testConfig())
	err := svc.Create(context.Background(), &model.TypePhotographie{Name: "Mariage"})

	if err == nil {
		t.Fatal("expected conflict error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeConflict)
	}
}

func TestCreate_DefaultsToActive(t *testing.T) {
	var stored *model.TypePhotographie
	repo := &mockTypeRepository{
		createFunc: func(ctx context.Context, typ *model.TypePhotographie) error {
			stored = typ
			return nil
		},
	}

	svc := NewTypeService(repo, validator.NewTypeValidator(), testConfig())
	if err := svc.Create(context.Background(), &model.TypePhotographie{Name: "  Naissance  "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.IsActive == nil || !*stored.IsActive {
		t.Error("new type must default to active")
	}
	if stored.Name != "Naissance" {
		t.Errorf("Name = %q, sanitization must trim it", stored.Name)
	}
}

func TestDelete_Deactivates(t *testing.T) {
	var deletedID string
	repo := &mockTypeRepository{
		softDeleteFunc: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}

	svc := NewTypeService(repo, validator.NewTypeValidator(), testConfig())
	if err := svc.Delete(context.Background(), "665f1c2a9b3e4d5a6f7b8c9d"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != "665f1c2a9b3e4d5a6f7b8c9d" {
		t.Errorf("deleted id = %q", deletedID)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockTypeRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.TypePhotographie, error) {
			return nil, phototypeserrors.ErrNotFound
		},
	}

	svc := NewTypeService(repo, validator.NewTypeValidator(), testConfig())
	_, err := svc.GetByID(context.Background(), "665f1c2a9b3e4d5a6f7b8c9d")

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	apperrors "konica/pkg/errors"
	"konica/pkg/logger"
	"konica/pkg/model"
)

type mockReservationService struct {
	createFunc      func(ctx context.Context, r *model.Reservation) error
	getByIDFunc     func(ctx context.Context, id string) (*model.Reservation, error)
	getAllFunc      func(ctx context.Context) ([]*model.Reservation, error)
	transitionFunc  func(ctx context.Context, id string, next model.Status) (*model.Reservation, error)
	setStatusFunc   func(ctx context.Context, id string, status model.Status) (*model.Reservation, error)
	byEmployerFunc  func(ctx context.Context, employerID string) ([]*model.Reservation, error)
	byDateRangeFunc func(ctx context.Context, from, to time.Time) ([]*model.Reservation, error)
	updateFunc      func(ctx context.Context, id string, u *model.ReservationUpdate) (*model.Reservation, error)
	assignFunc      func(ctx context.Context, id, employerID string) (*model.Reservation, error)
	updateInvFunc   func(ctx context.Context, id string, u *model.InvoiceUpdate) (*model.Reservation, error)
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockReservationService) Create(ctx context.Context, r *model.Reservation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, r)
	}
	return nil
}

func (m *mockReservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Reservation{ID: id, Status: model.StatusPending}, nil
}

func (m *mockReservationService) GetAll(ctx context.Context) ([]*model.Reservation, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return []*model.Reservation{}, nil
}

func (m *mockReservationService) GetByEmployer(ctx context.Context, employerID string) ([]*model.Reservation, error) {
	if m.byEmployerFunc != nil {
		return m.byEmployerFunc(ctx, employerID)
	}
	return []*model.Reservation{}, nil
}

func (m *mockReservationService) GetByDateRange(ctx context.Context, from, to time.Time) ([]*model.Reservation, error) {
	if m.byDateRangeFunc != nil {
		return m.byDateRangeFunc(ctx, from, to)
	}
	return []*model.Reservation{}, nil
}

func (m *mockReservationService) Update(ctx context.Context, id string, u *model.ReservationUpdate) (*model.Reservation, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, u)
	}
	return &model.Reservation{ID: id}, nil
}

func (m *mockReservationService) Transition(ctx context.Context, id string, next model.Status) (*model.Reservation, error) {
	if m.transitionFunc != nil {
		return m.transitionFunc(ctx, id, next)
	}
	return &model.Reservation{ID: id, Status: next}, nil
}

func (m *mockReservationService) SetStatus(ctx context.Context, id string, status model.Status) (*model.Reservation, error) {
	if m.setStatusFunc != nil {
		return m.setStatusFunc(ctx, id, status)
	}
	return &model.Reservation{ID: id, Status: status}, nil
}

func (m *mockReservationService) AssignEmployer(ctx context.Context, id, employerID string) (*model.Reservation, error) {
	if m.assignFunc != nil {
		return m.assignFunc(ctx, id, employerID)
	}
	return &model.Reservation{ID: id, AssignedEmployers: []string{employerID}}, nil
}

func (m *mockReservationService) UpdateInvoice(ctx context.Context, id string, u *model.InvoiceUpdate) (*model.Reservation, error) {
	if m.updateInvFunc != nil {
		return m.updateInvFunc(ctx, id, u)
	}
	return &model.Reservation{ID: id}, nil
}

func (m *mockReservationService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func testRouter(svc *mockReservationService) *httprouter.Router {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	router := httprouter.New()
	NewReservationHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestGetByID_AttachesArabicLabels(t *testing.T) {
	svc := &mockReservationService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Reservation, error) {
			return &model.Reservation{
				ID:             id,
				Period:         model.PeriodMorning,
				TeamPreference: model.TeamAny,
				Status:         model.StatusConfirmed,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reservations/665f1c2a9b3e4d5a6f7b8c9f", nil)
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Data struct {
			Labels struct {
				Status string `json:"status"`
				Period string `json:"period"`
			} `json:"labels"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Data.Labels.Status != "مؤكد" {
		t.Errorf("status label = %q", body.Data.Labels.Status)
	}
	if body.Data.Labels.Period != "صباح" {
		t.Errorf("period label = %q", body.Data.Labels.Period)
	}
}

func TestUpdateStatus_StrictByDefaultForcedOnRequest(t *testing.T) {
	var transitionCalled, setStatusCalled bool
	svc := &mockReservationService{
		transitionFunc: func(ctx context.Context, id string, next model.Status) (*model.Reservation, error) {
			transitionCalled = true
			return &model.Reservation{ID: id, Status: next}, nil
		},
		setStatusFunc: func(ctx context.Context, id string, status model.Status) (*model.Reservation, error) {
			setStatusCalled = true
			return &model.Reservation{ID: id, Status: status}, nil
		},
	}
	router := testRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/reservations/665f1c2a9b3e4d5a6f7b8c9f/status",
		strings.NewReader(`{"status":"confirmed"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if !transitionCalled || setStatusCalled {
		t.Error("default status update must use the strict transition path")
	}

	transitionCalled, setStatusCalled = false, false
	req = httptest.NewRequest(http.MethodPatch, "/api/reservations/665f1c2a9b3e4d5a6f7b8c9f/status?force=true",
		strings.NewReader(`{"status":"pending"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if !setStatusCalled || transitionCalled {
		t.Error("force=true must use the permissive path")
	}
}

func TestUpdateStatus_ConflictSurfacesAs409(t *testing.T) {
	svc := &mockReservationService{
		transitionFunc: func(ctx context.Context, id string, next model.Status) (*model.Reservation, error) {
			return nil, apperrors.Conflict("Cannot transition reservation from \"completed\" to \"pending\"")
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/reservations/665f1c2a9b3e4d5a6f7b8c9f/status",
		strings.NewReader(`{"status":"pending"}`))
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestCreate_InvalidJSONRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	testRouter(&mockReservationService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetAll_EmployerQueryRoutesToEmployerView(t *testing.T) {
	var requested string
	svc := &mockReservationService{
		byEmployerFunc: func(ctx context.Context, employerID string) ([]*model.Reservation, error) {
			requested = employerID
			return []*model.Reservation{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reservations?employer=665f1c2a9b3e4d5a6f7b8ca0", nil)
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if requested != "665f1c2a9b3e4d5a6f7b8ca0" {
		t.Errorf("employer = %q", requested)
	}
}

func TestGetAll_BadDateRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/reservations?from=not-a-date&to=2026-09-12", nil)
	rec := httptest.NewRecorder()
	testRouter(&mockReservationService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"konica/internal/users/service"
	httputil "konica/pkg/http"
	"konica/pkg/logger"
	"konica/pkg/model"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.NewUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, user); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	users, err := h.service.GetAll(r.Context(), includeInactive)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, users); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *UserHandler) GetEmployees(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.service.GetEmployees(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetEmployees", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, users); err != nil {
		h.log.Error("failed to write success response", "handler", "GetEmployees", "error", err)
	}
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "User deactivated successfully"); err != nil {
		h.log.Error("failed to write response", "handler", "Delete", "error", err)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/users", h.Create)
	router.GET("/api/users", h.GetAll)
	router.GET("/api/users/:id", h.GetByID)
	router.DELETE("/api/users/:id", h.Delete)
	router.GET("/api/employees", h.GetEmployees)
}

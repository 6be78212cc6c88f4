package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"konica/internal/phototypes/service"
	httputil "konica/pkg/http"
	"konica/pkg/logger"
	"konica/pkg/model"
)

type TypeHandler struct {
	service service.TypeService
	log     *logger.Logger
}

func NewTypeHandler(service service.TypeService, log *logger.Logger) *TypeHandler {
	return &TypeHandler{
		service: service,
		log:     log,
	}
}

func (h *TypeHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var t model.TypePhotographie
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &t); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, t); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *TypeHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	types, err := h.service.GetAll(r.Context(), includeInactive)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, types); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *TypeHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	t, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, t); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *TypeHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.TypePhotographieUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	t, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, t); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *TypeHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "Photography type deleted successfully"); err != nil {
		h.log.Error("failed to write response", "handler", "Delete", "error", err)
	}
}

func (h *TypeHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/type-photographie", h.Create)
	router.GET("/api/type-photographie", h.GetAll)
	router.GET("/api/type-photographie/:id", h.GetByID)
	router.PUT("/api/type-photographie/:id", h.Update)
	router.DELETE("/api/type-photographie/:id", h.Delete)
}

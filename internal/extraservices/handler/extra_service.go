package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"konica/internal/extraservices/service"
	httputil "konica/pkg/http"
	"konica/pkg/logger"
	"konica/pkg/model"
)

type ExtraServiceHandler struct {
	service service.ExtraServiceService
	log     *logger.Logger
}

func NewExtraServiceHandler(service service.ExtraServiceService, log *logger.Logger) *ExtraServiceHandler {
	return &ExtraServiceHandler{
		service: service,
		log:     log,
	}
}

func (h *ExtraServiceHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var svc model.ExtraService
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &svc); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, svc); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ExtraServiceHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	services, err := h.service.GetAll(r.Context(), includeInactive)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, services); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *ExtraServiceHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	svc, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, svc); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *ExtraServiceHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.ExtraServiceUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	svc, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, svc); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *ExtraServiceHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "Extra service deleted successfully"); err != nil {
		h.log.Error("failed to write response", "handler", "Delete", "error", err)
	}
}

func (h *ExtraServiceHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/extra-services", h.Create)
	router.GET("/api/extra-services", h.GetAll)
	router.GET("/api/extra-services/:id", h.GetByID)
	router.PUT("/api/extra-services/:id", h.Update)
	router.DELETE("/api/extra-services/:id", h.Delete)
}

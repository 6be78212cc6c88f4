package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"konica/internal/packs/service"
	httputil "konica/pkg/http"
	"konica/pkg/logger"
	"konica/pkg/model"
)

type PackHandler struct {
	service service.PackService
	log     *logger.Logger
}

func NewPackHandler(service service.PackService, log *logger.Logger) *PackHandler {
	return &PackHandler{
		service: service,
		log:     log,
	}
}

func (h *PackHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var pack model.Pack
	if err := json.NewDecoder(r.Body).Decode(&pack); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &pack); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, pack); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

// GetAll returns active packs by default; ?include_inactive=true returns the
// full catalog for the admin view.
func (h *PackHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	packs, err := h.service.GetAll(r.Context(), includeInactive)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, packs); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *PackHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pack, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, pack); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *PackHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.PackUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	pack, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, pack); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *PackHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "Pack deleted successfully"); err != nil {
		h.log.Error("failed to write response", "handler", "Delete", "error", err)
	}
}

func (h *PackHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/packs", h.Create)
	router.GET("/api/packs", h.GetAll)
	router.GET("/api/packs/:id", h.GetByID)
	router.PUT("/api/packs/:id", h.Update)
	router.DELETE("/api/packs/:id", h.Delete)
}

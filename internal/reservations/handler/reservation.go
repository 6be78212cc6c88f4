package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"konica/internal/reservations/service"
	httputil "konica/pkg/http"
	"konica/pkg/locale"
	"konica/pkg/logger"
	"konica/pkg/model"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

// reservationResponse attaches the Arabic enum labels the admin frontend
// renders next to each reservation.
type reservationResponse struct {
	*model.Reservation
	Labels locale.Labels `json:"labels"`
}

func labeled(r *model.Reservation) reservationResponse {
	return reservationResponse{Reservation: r, Labels: locale.ForReservation(r)}
}

func labeledAll(reservations []*model.Reservation) []reservationResponse {
	out := make([]reservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, labeled(r))
	}
	return out
}

type statusRequest struct {
	Status model.Status `json:"status"`
}

type assignEmployerRequest struct {
	EmployerID string `json:"employerId"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var reservation model.Reservation
	if err := json.NewDecoder(r.Body).Decode(&reservation); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &reservation); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, labeled(&reservation)); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

// GetAll also serves the employer and date-range views through query
// parameters: ?employer=<id>, or ?from=<date>&to=<date> (RFC 3339 or
// YYYY-MM-DD).
func (h *ReservationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	var (
		reservations []*model.Reservation
		err          error
	)

	switch {
	case query.Get("employer") != "":
		reservations, err = h.service.GetByEmployer(r.Context(), query.Get("employer"))
	case query.Get("from") != "" || query.Get("to") != "":
		var from, to time.Time
		from, err = parseDate(query.Get("from"))
		if err == nil {
			to, err = parseDate(query.Get("to"))
		}
		if err != nil {
			if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Error: "Invalid date format, expected RFC 3339 or YYYY-MM-DD",
			}); writeErr != nil {
				h.log.Error("failed to write JSON response", "handler", "GetAll", "error", writeErr)
			}
			return
		}
		reservations, err = h.service.GetByDateRange(r.Context(), from, to)
	default:
		reservations, err = h.service.GetAll(r.Context())
	}

	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, labeledAll(reservations)); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, labeled(reservation)); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.ReservationUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, labeled(reservation)); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

// UpdateStatus enforces the lifecycle table. Callers that still need the old
// unchecked behavior pass ?force=true.
func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateStatus", "error", writeErr)
		}
		return
	}

	var (
		reservation *model.Reservation
		err         error
	)
	if r.URL.Query().Get("force") == "true" {
		reservation, err = h.service.SetStatus(r.Context(), ps.ByName("id"), req.Status)
	} else {
		reservation, err = h.service.Transition(r.Context(), ps.ByName("id"), req.Status)
	}
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, labeled(reservation)); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "error", err)
	}
}

func (h *ReservationHandler) AssignEmployer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req assignEmployerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "AssignEmployer", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.AssignEmployer(r.Context(), ps.ByName("id"), req.EmployerID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "AssignEmployer", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, labeled(reservation)); err != nil {
		h.log.Error("failed to write success response", "handler", "AssignEmployer", "error", err)
	}
}

func (h *ReservationHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.InvoiceUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateInvoice", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.UpdateInvoice(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateInvoice", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, labeled(reservation)); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateInvoice", "error", err)
	}
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "Reservation deleted successfully"); err != nil {
		h.log.Error("failed to write response", "handler", "Delete", "error", err)
	}
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/reservations", h.Create)
	router.GET("/api/reservations", h.GetAll)
	router.GET("/api/reservations/:id", h.GetByID)
	router.PUT("/api/reservations/:id", h.Update)
	router.DELETE("/api/reservations/:id", h.Delete)
	router.PATCH("/api/reservations/:id/status", h.UpdateStatus)
	router.PATCH("/api/reservations/:id/assign-employer", h.AssignEmployer)
	router.PATCH("/api/reservations/:id/invoice", h.UpdateInvoice)
}

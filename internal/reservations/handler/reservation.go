package handler

import (
	"encoding/json"
	"net/http"

	"refugio/internal/reservations/service"
	httputil "refugio/pkg/http"
	"refugio/pkg/logger"
	"refugio/pkg/model"

	"github.com/julienschmidt/httprouter"
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

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.Create(r.Context(), req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	reservation, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	status := model.Status(r.URL.Query().Get("status"))

	reservations, total, err := h.service.GetAll(r.Context(), status, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var update model.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateStatus", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.UpdateStatus(r.Context(), id, update)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/reservations", h.Create)
	router.GET("/reservations", h.GetAll)
	router.GET("/reservations/:id", h.GetByID)
	router.PATCH("/reservations/:id/status", h.UpdateStatus)
}

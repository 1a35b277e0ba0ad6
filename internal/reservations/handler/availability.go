package handler

import (
	"net/http"
	"strconv"
	"time"

	"refugio/internal/reservations/availability"
	"refugio/internal/reservations/service"
	"refugio/pkg/calendar"
	apperrors "refugio/pkg/errors"
	httputil "refugio/pkg/http"
	"refugio/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type AvailabilityHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.ReservationService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

// Check answers whether a cabin is free over an inclusive date range.
func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cabinID := ps.ByName("id")
	query := r.URL.Query()

	result, err := h.service.CheckAvailability(r.Context(), cabinID, query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Check", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Check", "operation", "WriteSuccess", "error", err)
	}
}

// Calendar renders one month of per-day availability for a cabin. The
// month defaults to the current one; an optional tentative selection
// range is echoed back as "selected" days.
func (h *AvailabilityHandler) Calendar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cabinID := ps.ByName("id")
	query := r.URL.Query()

	now := calendar.Today()
	year := now.Year()
	month := now.Month()

	if s := query.Get("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid year parameter: "+s)); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Calendar", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		year = v
	}

	if s := query.Get("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid month parameter: "+s)); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Calendar", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		month = time.Month(v)
	}

	var sel availability.Selection
	selStart := query.Get("selection_start")
	selEnd := query.Get("selection_end")
	if selStart != "" && selEnd != "" {
		sel.Start = calendar.Parse(selStart, h.log)
		sel.End = calendar.Parse(selEnd, h.log)
	}

	days, err := h.service.MonthView(r.Context(), cabinID, year, month, sel)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Calendar", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, days); err != nil {
		h.log.Error("failed to write success response", "handler", "Calendar", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/cabins/:id/availability", h.Check)
	router.GET("/cabins/:id/calendar", h.Calendar)
}

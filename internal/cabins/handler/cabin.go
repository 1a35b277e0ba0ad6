package handler

import (
	"net/http"

	"refugio/internal/cabins/service"
	httputil "refugio/pkg/http"
	"refugio/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type CabinHandler struct {
	service service.CabinService
	log     *logger.Logger
}

func NewCabinHandler(service service.CabinService, log *logger.Logger) *CabinHandler {
	return &CabinHandler{
		service: service,
		log:     log,
	}
}

func (h *CabinHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	// Inactive cabins stay hidden unless explicitly requested.
	activeOnly := r.URL.Query().Get("include_inactive") != "true"

	cabins, total, err := h.service.GetAll(r.Context(), activeOnly, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, cabins, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *CabinHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	cabin, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, cabin); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CabinHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/cabins", h.GetAll)
	router.GET("/cabins/:id", h.GetByID)
}

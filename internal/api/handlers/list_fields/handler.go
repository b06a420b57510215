package list_fields

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
)

const (
	msgInvalidSport = "неизвестный вид спорта"
)

type Handler struct {
	service FieldService
	logger  Logger
}

func NewHandler(service FieldService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields
// Query params: sport (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), handlers.QueryString(r, "sport"))
	if err != nil {
		if errors.Is(err, fields.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidSport)
			return
		}
		h.logger.Error("GET /fields - Failed to list fields: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /fields - Fields retrieved successfully: count=%d", len(result.Fields))
	handlers.RespondJSON(w, http.StatusOK, result)
}

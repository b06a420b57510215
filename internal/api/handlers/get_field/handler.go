package get_field

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
)

const (
	msgInvalidFieldID = "некорректный ID поля"
	msgNotFound       = "поле не найдено"
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

// Handle GET /api/v1/fields/{fieldId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := handlers.ParseID(mux.Vars(r)["fieldId"])
	if err != nil {
		h.logger.Warn("GET /fields/{id} - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	field, err := h.service.GetByID(r.Context(), fieldID)
	if err != nil {
		if errors.Is(err, fields.ErrFieldNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /fields/{id} - Failed to get field: field_id=%d, error=%v", fieldID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, field)
}

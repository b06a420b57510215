package delete_field

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

// Handle DELETE /api/v1/admin/fields/{fieldId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := handlers.ParseID(mux.Vars(r)["fieldId"])
	if err != nil {
		h.logger.Warn("DELETE /admin/fields/{id} - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	if err := h.service.Delete(r.Context(), fieldID); err != nil {
		if errors.Is(err, fields.ErrFieldNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/fields/{id} - Failed to delete field: field_id=%d, error=%v", fieldID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/fields/{id} - Field deactivated: field_id=%d", fieldID)
	w.WriteHeader(http.StatusNoContent)
}

package update_field

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
)

const (
	msgInvalidFieldID     = "некорректный ID поля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "поле не найдено"
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

// Handle PUT /api/v1/admin/fields/{fieldId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := handlers.ParseID(mux.Vars(r)["fieldId"])
	if err != nil {
		h.logger.Warn("PUT /admin/fields/{id} - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	var req models.SaveFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/fields/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /admin/fields/{id} - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	field, err := h.service.Update(r.Context(), fieldID, &req)
	if err != nil {
		switch {
		case errors.Is(err, fields.ErrFieldNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, fields.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /admin/fields/{id} - Failed to update field: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/fields/{id} - Field updated successfully: field_id=%d", fieldID)
	handlers.RespondJSON(w, http.StatusOK, field)
}

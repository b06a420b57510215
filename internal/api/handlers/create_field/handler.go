package create_field

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/admin/fields
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SaveFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/fields - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /admin/fields - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	field, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, fields.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /admin/fields - Failed to create field: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/fields - Field created successfully: field_id=%d", field.ID)
	handlers.RespondJSON(w, http.StatusCreated, field)
}

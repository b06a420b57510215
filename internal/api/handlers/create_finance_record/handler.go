package create_finance_record

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/finance"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/finance/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service FinanceService
	logger  Logger
}

func NewHandler(service FinanceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/finance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRecordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/finance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /admin/finance - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	req.CreatedBy, _ = middleware.GetUserID(r.Context())

	record, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, finance.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /admin/finance - Failed to create record: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/finance - Record created: id=%d, type=%s", record.ID, record.Type)
	handlers.RespondJSON(w, http.StatusCreated, record)
}

package list_finance

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/finance"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/finance/models"
)

const (
	msgInvalidQuery = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/admin/finance
// Query params: from, to (YYYY-MM-DD), type (income|expense)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListRecordsRequest{
		From: from,
		To:   to,
		Type: handlers.QueryString(r, "type"),
	})
	if err != nil {
		if errors.Is(err, finance.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /admin/finance - Failed to list records: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/finance - Records retrieved: count=%d", len(result.Records))
	handlers.RespondJSON(w, http.StatusOK, result)
}

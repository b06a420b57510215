package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

const (
	msgInvalidQuery = "некорректные параметры фильтрации"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query: fieldId, status, paymentStatus, dateFrom, dateTo, limit, offset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListAll(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: count=%d, total=%d",
		len(result.Bookings), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.ListBookingsRequest, error) {
	fieldID, err := handlers.QueryInt64(r, "fieldId")
	if err != nil {
		return nil, err
	}
	dateFrom, err := handlers.QueryDate(r, "dateFrom")
	if err != nil {
		return nil, err
	}
	dateTo, err := handlers.QueryDate(r, "dateTo")
	if err != nil {
		return nil, err
	}
	limit, offset, err := handlers.QueryPage(r)
	if err != nil {
		return nil, err
	}

	return &models.ListBookingsRequest{
		FieldID:       fieldID,
		Status:        handlers.QueryString(r, "status"),
		PaymentStatus: handlers.QueryString(r, "paymentStatus"),
		DateFrom:      dateFrom,
		DateTo:        dateTo,
		Limit:         limit,
		Offset:        offset,
	}, nil
}

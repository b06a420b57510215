package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgProofRequired       = "необходимо приложить подтверждение оплаты"
	msgPastDate            = "нельзя бронировать прошедшие даты"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgFieldNotFound       = "поле не найдено"
	msgInvalidTime         = "некорректный формат времени, ожидается HH:MM"
	msgInvalidTimeRange    = "время окончания должно быть позже времени начала"
	msgInvalidDuration     = "длительность бронирования должна быть кратна 30 минутам"
	msgFieldClosed         = "поле закрыто в выбранный день"
	msgOutsideOpenHours    = "бронирование выходит за часы работы поля"
	msgSlotNotAvailable    = "выбранный интервал уже забронирован"
	msgCustomerInfoMissing = "необходимо указать имя и телефон"
	msgInvalidInput        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Подтверждение оплаты проверяется раньше даты
	if strings.TrimSpace(req.ProofOfPayment) == "" {
		h.logger.Warn("POST /bookings - Missing payment proof: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgProofRequired)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, field_id=%d", userID, req.FieldID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrFieldNotFound):
			h.logger.Warn("POST /bookings - Field not found: field_id=%d", req.FieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, createBooking.ErrPaymentProofRequired):
			handlers.RespondBadRequest(w, msgProofRequired)

		case errors.Is(err, createBooking.ErrPastDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrInvalidDuration):
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrFieldClosed):
			handlers.RespondBadRequest(w, msgFieldClosed)

		case errors.Is(err, createBooking.ErrOutsideOpenHours):
			handlers.RespondBadRequest(w, msgOutsideOpenHours)

		case errors.Is(err, createBooking.ErrCustomerInfoRequired):
			handlers.RespondBadRequest(w, msgCustomerInfoMissing)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, field_id=%d, error=%v",
				userID, req.FieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, field_id=%d",
		result.ID, userID, req.FieldID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

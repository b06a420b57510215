package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo        BookingRepository
	fieldRepo          FieldRepository
	userClient         UserServiceClient
	txManager          TransactionManager
	timeProvider       TimeProvider
	advanceBookingDays int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	fieldRepo FieldRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	advanceBookingDays int,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if advanceBookingDays <= 0 {
		advanceBookingDays = domain.DefaultAdvanceBookingDays
	}
	return &UseCase{
		bookingRepo:        bookingRepo,
		fieldRepo:          fieldRepo,
		userClient:         userClient,
		txManager:          txManager,
		timeProvider:       timeProvider,
		advanceBookingDays: advanceBookingDays,
		logger:             logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверки идут в фиксированном порядке, первая сработавшая определяет ошибку.
// Проверка пересечений и вставка выполняются в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, field=%d, date=%s, time=%s-%s",
		req.UserID, req.FieldID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	// 1. Подтверждение оплаты обязательно
	if strings.TrimSpace(req.ProofOfPayment) == "" {
		uc.logger.Warn("CreateBooking: payment proof is missing, user=%d", req.UserID)
		return nil, ErrPaymentProofRequired
	}

	// 2-3. Дата не в прошлом и в пределах горизонта бронирования
	date := domain.DateOnly(req.Date, now.Location())
	if err := validateDate(date, now, uc.advanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Активное поле должно существовать
	field, err := uc.fieldRepo.GetActiveByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("CreateBooking: field id=%d not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("CreateBooking: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	// 5. Разбор временного интервала
	startTime, endTime, interval, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: time validation failed: %v", err)
		return nil, err
	}

	// 6-7. Расписание поля на день недели и часы работы
	if err := validateOpeningHours(field, date, interval); err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateBooking: %v", err)
		} else {
			uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
		}
		return nil, err
	}

	var result *domain.Booking

	// 8-11. Пересечения, данные клиента, цена и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Сериализуем конкурентные заявки на одно поле и дату
		if err := uc.bookingRepo.LockSlot(txCtx, field.ID, date); err != nil {
			uc.logger.Error("CreateBooking: failed to lock slot: %v", err)
			return fmt.Errorf("%w: failed to lock slot: %w", ErrInternal, err)
		}

		// 8.2. Ищем удерживающее слот бронирование, пересекающееся с интервалом
		conflict, err := uc.bookingRepo.FindOverlapping(txCtx, domain.SlotQuery{
			FieldID:  field.ID,
			Date:     date,
			Interval: interval,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to find overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to find overlapping bookings: %w", ErrInternal, err)
		}
		if conflict != nil {
			uc.logger.Warn("CreateBooking: slot %s-%s on field id=%d conflicts with booking id=%d",
				startTime, endTime, field.ID, conflict.ID)
			return ErrSlotNotAvailable
		}

		// 9. Контактные данные клиента
		if err := validateCustomer(req); err != nil {
			uc.logger.Warn("CreateBooking: customer validation failed: %v", err)
			return err
		}

		// 10. Стоимость считается по актуальной цене поля
		minutes := interval.Minutes()
		booking := &domain.Booking{
			UserID:          req.UserID,
			FieldID:         field.ID,
			BookingDate:     date,
			StartTime:       startTime,
			EndTime:         endTime,
			DurationMinutes: minutes,
			TotalPrice:      domain.PriceFor(minutes, field.PricePerHour),
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerPhone:   normalizePhone(req.CustomerPhone),
			Notes:           req.Notes,
			ProofOfPayment:  strings.TrimSpace(req.ProofOfPayment),
			PaymentMethod:   domain.PaymentMethodTransfer,
			PaymentStatus:   domain.PaymentPending,
			Status:          domain.StatusPending,
		}

		// 11. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot taken by a concurrent booking on field id=%d", field.ID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, price=%s", result.ID, result.TotalPrice.StringFixed(2))

	// 12. Прикладываем поле и владельца для ответа
	result.Field = field
	result.Owner = uc.resolveOwner(ctx, req.UserID)

	return toResponse(result), nil
}

// resolveOwner получает владельца бронирования. Недоступность UserService не ломает создание.
func (uc *UseCase) resolveOwner(ctx context.Context, userID int64) *domain.Owner {
	if uc.userClient == nil {
		return nil
	}

	user, err := uc.userClient.GetUserWithGracefulDegradation(ctx, userID)
	if err != nil || user == nil {
		uc.logger.Warn("CreateBooking: owner details unavailable for user=%d: %v", userID, err)
		return nil
	}

	return &domain.Owner{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
	}
}

func toResponse(b *domain.Booking) *Response {
	resp := &Response{
		ID:             b.ID,
		UserID:         b.UserID,
		FieldID:        b.FieldID,
		BookingDate:    b.BookingDate,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		TotalHours:     b.TotalHours(),
		TotalPrice:     b.TotalPrice,
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		Notes:          b.Notes,
		ProofOfPayment: b.ProofOfPayment,
		PaymentMethod:  string(b.PaymentMethod),
		PaymentStatus:  string(b.PaymentStatus),
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if b.Field != nil {
		resp.Field = &FieldInfo{
			ID:           b.Field.ID,
			Name:         b.Field.Name,
			Sport:        string(b.Field.Sport),
			PricePerHour: b.Field.PricePerHour,
		}
	}

	if b.Owner != nil {
		resp.Owner = &OwnerInfo{
			ID:    b.Owner.ID,
			Name:  b.Owner.Name,
			Email: b.Owner.Email,
			Phone: b.Owner.Phone,
		}
	}

	return resp
}

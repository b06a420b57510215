package get_field_availability

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

// UseCase use case получения занятых интервалов поля на дату
type UseCase struct {
	bookingRepo BookingRepository
	fieldRepo   FieldRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, fieldRepo FieldRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		fieldRepo:   fieldRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения занятости поля
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFieldAvailability: field=%d, date=%s", req.FieldID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFieldAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Поле должно быть активным
	field, err := uc.fieldRepo.GetActiveByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("GetFieldAvailability: field id=%d not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("GetFieldAvailability: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	date := domain.DateOnly(req.Date, req.Date.Location())

	// 3. Занятые интервалы (pending и active)
	slots, err := uc.bookingRepo.FindBookedSlots(ctx, field.ID, date, domain.SlotHoldingStatuses)
	if err != nil {
		uc.logger.Error("GetFieldAvailability: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	resp := &Response{
		FieldID: field.ID,
		Date:    date,
		Booked:  slots,
	}

	// 4. Расписание дня
	if rule, ok := field.AvailabilityFor(date); ok {
		resp.IsOpen = true
		resp.OpenTime = ptr.Ptr(rule.OpenTime)
		resp.CloseTime = ptr.Ptr(rule.CloseTime)
	}

	uc.logger.Info("GetFieldAvailability: field=%d has %d booked slots", field.ID, len(slots))

	return resp, nil
}

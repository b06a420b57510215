package confirm_payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
)

// UseCase use case подтверждения оплаты бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	fieldRepo    FieldRepository
	outboxRepo   OutboxRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	fieldRepo FieldRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		fieldRepo:    fieldRepo,
		outboxRepo:   outboxRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute применяет решение администратора по оплате.
// Доход запрашивается через outbox после коммита: при первом переходе в paid
// и при повторном paid, если событие о доходе еще не записано.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking=%d, decision=%s, admin=%d", req.BookingID, req.PaymentStatus, req.AdminID)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking_id must be positive", ErrInvalidInput)
	}
	decision, ok := domain.ParsePaymentStatus(req.PaymentStatus)
	if !ok || (decision != domain.PaymentPaid && decision != domain.PaymentFailed) {
		uc.logger.Warn("ConfirmPayment: invalid decision %q", req.PaymentStatus)
		return nil, ErrInvalidDecision
	}

	now := uc.timeProvider.Now()

	var (
		result    *domain.Booking
		changed   bool
		firstPaid bool
	)

	// 2. Переход состояния под блокировкой строки
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		changed, firstPaid, err = booking.ApplyPaymentDecision(decision, now)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				return fmt.Errorf("%w: status=%s, decision=%s", ErrInvalidTransition, booking.Status, decision)
			}
			return ErrInvalidDecision
		}

		if changed {
			if err := uc.bookingRepo.UpdatePayment(txCtx, booking); err != nil {
				if errors.Is(err, bookingRepo.ErrBookingNotFound) {
					return ErrBookingNotFound
				}
				return fmt.Errorf("%w: failed to update payment: %w", ErrInternal, err)
			}
		}

		result = booking
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			uc.logger.Warn("ConfirmPayment: booking id=%d not found", req.BookingID)
		case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrInvalidDecision):
			uc.logger.Warn("ConfirmPayment: %v", err)
		default:
			uc.logger.Error("ConfirmPayment: failed for booking id=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	if !changed {
		uc.logger.Info("ConfirmPayment: booking id=%d already %s, nothing to do", result.ID, result.Status)
	} else {
		uc.logger.Info("ConfirmPayment: booking id=%d is now %s/%s", result.ID, result.Status, result.PaymentStatus)
	}

	// 3. Запрос на запись дохода. Ошибка не откатывает подтверждение.
	scheduled := false
	if firstPaid || uc.incomeMissing(ctx, result) {
		if err := uc.scheduleIncome(ctx, result, req.AdminID, now); err != nil {
			uc.logger.Error("ConfirmPayment: failed to schedule income for booking id=%d: %v", result.ID, err)
		} else {
			scheduled = true
		}
	}

	return &Response{
		Booking:         result,
		Changed:         changed,
		IncomeScheduled: scheduled,
	}, nil
}

// incomeMissing сообщает, что оплаченное бронирование осталось без события о доходе
func (uc *UseCase) incomeMissing(ctx context.Context, b *domain.Booking) bool {
	if b.PaymentStatus != domain.PaymentPaid {
		return false
	}

	exists, err := uc.outboxRepo.HasEvent(ctx, domain.EventBookingPaid, b.ID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to check income event for booking id=%d: %v", b.ID, err)
		return false
	}
	if !exists {
		uc.logger.Warn("ConfirmPayment: booking id=%d is paid without income event, rescheduling", b.ID)
	}
	return !exists
}

func (uc *UseCase) scheduleIncome(ctx context.Context, b *domain.Booking, adminID int64, now time.Time) error {
	field, err := uc.fieldRepo.GetByID(ctx, b.FieldID)
	if err != nil {
		return fmt.Errorf("get field id=%d: %w", b.FieldID, err)
	}
	b.Field = field

	paidAt := now
	if b.PaidAt != nil {
		paidAt = *b.PaidAt
	}

	event := domain.BookingPaidEvent{
		EventID:     uuid.NewString(),
		BookingID:   b.ID,
		FieldID:     field.ID,
		FieldName:   field.Name,
		Sport:       field.Sport,
		Amount:      b.TotalPrice,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		ConfirmedBy: adminID,
		PaidAt:      paidAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := uc.outboxRepo.Enqueue(ctx, &domain.OutboxEvent{
		EventID:     event.EventID,
		EventType:   domain.EventBookingPaid,
		AggregateID: b.ID,
		Payload:     payload,
	}); err != nil {
		return fmt.Errorf("enqueue event: %w", err)
	}

	uc.logger.Info("ConfirmPayment: income event %s scheduled for booking id=%d", event.EventID, b.ID)
	return nil
}

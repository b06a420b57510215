package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	fieldRepo    FieldRepository
	userClient   UserServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	policy       domain.CancellationPolicy
	logger       Logger
}

// Option настраивает сервис
type Option func(*Service)

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(s *Service) {
		s.timeProvider = tp
	}
}

// WithCancellationPolicy задает политику отмены бронирований
func WithCancellationPolicy(p domain.CancellationPolicy) Option {
	return func(s *Service) {
		if p != nil {
			s.policy = p
		}
	}
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	fieldRepo FieldRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
	opts ...Option,
) *Service {
	s := &Service{
		bookingRepo:  bookingRepo,
		fieldRepo:    fieldRepo,
		userClient:   userClient,
		txManager:    txManager,
		timeProvider: realTimeProvider{},
		policy:       domain.AllowAlways,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование,
// администратор видит любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.attachDetails(ctx, booking)

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	filter := domain.BookingFilter{
		UserID: &req.UserID,
		Limit:  models.NormalizeLimit(req.Limit),
		Offset: req.Offset,
	}

	if req.Status != nil {
		status, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	return s.list(ctx, "GetUserBookings", filter)
}

// ListAll получает все бронирования с фильтрами. Доступно только администратору.
func (s *Service) ListAll(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListAll: fetching bookings, field=%v, status=%v, payment=%v", req.FieldID, req.Status, req.PaymentStatus)

	filter := domain.BookingFilter{
		FieldID:  req.FieldID,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Limit:    models.NormalizeLimit(req.Limit),
		Offset:   req.Offset,
	}

	if req.Status != nil {
		status, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("ListAll: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	if req.PaymentStatus != nil {
		paymentStatus, ok := domain.ParsePaymentStatus(*req.PaymentStatus)
		if !ok {
			s.logger.Warn("ListAll: invalid payment status=%s", *req.PaymentStatus)
			return nil, fmt.Errorf("%w: invalid payment status", ErrInvalidInput)
		}
		filter.PaymentStatus = &paymentStatus
	}

	if req.DateFrom != nil && req.DateTo != nil && req.DateTo.Before(*req.DateFrom) {
		return nil, fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidInput)
	}

	return s.list(ctx, "ListAll", filter)
}

// Cancel отменяет бронирование владельцем.
// Повторная отмена возвращает бронирование без изменений.
func (s *Service) Cancel(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, userID)

	now := s.timeProvider.Now()
	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Получаем бронирование под блокировкой строки
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		// Отменить может только владелец
		if booking.UserID != userID {
			return ErrAccessDenied
		}

		result = booking

		if booking.IsCancelled() {
			return nil
		}

		if err := s.policy(booking, now); err != nil {
			if errors.Is(err, domain.ErrCancellationNotAllowed) {
				return fmt.Errorf("%w: %v", ErrCannotCancel, err)
			}
			return fmt.Errorf("%w: Cancel - policy error: %v", ErrInternal, err)
		}

		booking.Cancel(now)

		if err := s.bookingRepo.Cancel(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", userID, bookingID)
		case errors.Is(err, ErrCannotCancel):
			s.logger.Warn("Cancel: booking id=%d: %v", bookingID, err)
		default:
			s.logger.Error("Cancel: failed for booking id=%d: %v", bookingID, err)
		}
		return nil, err
	}

	s.attachDetails(ctx, result)

	s.logger.Info("Cancel: booking id=%d is %s", bookingID, result.Status)
	return models.FromDomainBooking(result), nil
}

func (s *Service) list(ctx context.Context, op string, filter domain.BookingFilter) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	total, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("%s: count error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - count error: %v", ErrInternal, op, err)
	}

	s.attachFields(ctx, bookings)

	s.logger.Info("%s: successfully fetched %d of %d bookings", op, len(bookings), total)
	return models.FromDomainBookingList(bookings, total, filter.Limit, filter.Offset), nil
}

// attachDetails прикладывает поле и владельца. Ошибки не прерывают запрос.
func (s *Service) attachDetails(ctx context.Context, booking *domain.Booking) {
	s.attachFields(ctx, []*domain.Booking{booking})

	if s.userClient == nil {
		return
	}
	user, err := s.userClient.GetUserWithGracefulDegradation(ctx, booking.UserID)
	if err != nil || user == nil {
		s.logger.Warn("attachDetails: owner details unavailable for user=%d: %v", booking.UserID, err)
		return
	}
	booking.Owner = &domain.Owner{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
	}
}

func (s *Service) attachFields(ctx context.Context, bookings []*domain.Booking) {
	cache := make(map[int64]*domain.Field)
	for _, b := range bookings {
		f, ok := cache[b.FieldID]
		if !ok {
			var err error
			f, err = s.fieldRepo.GetByID(ctx, b.FieldID)
			if err != nil {
				s.logger.Warn("attachFields: field id=%d unavailable: %v", b.FieldID, err)
			}
			cache[b.FieldID] = f
		}
		b.Field = f
	}
}

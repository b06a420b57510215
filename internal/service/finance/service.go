package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/finance/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

// Service сервис финансового учета
type Service struct {
	financeRepo FinanceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса финансов
func NewService(financeRepo FinanceRepository, logger Logger) *Service {
	return &Service{
		financeRepo: financeRepo,
		logger:      logger,
	}
}

// List возвращает записи по фильтру вместе с итогами
func (s *Service) List(ctx context.Context, req *models.ListRecordsRequest) (*models.RecordListResponse, error) {
	s.logger.Info("List: fetching finance records, from=%v, to=%v, type=%v", req.From, req.To, req.Type)

	filter := domain.FinanceFilter{From: req.From, To: req.To}

	if req.Type != nil {
		t, ok := domain.ParseFinanceType(*req.Type)
		if !ok {
			s.logger.Warn("List: invalid type=%s", *req.Type)
			return nil, fmt.Errorf("%w: invalid type", ErrInvalidInput)
		}
		filter.Type = &t
	}

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	records, err := s.financeRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d finance records", len(records))
	return models.FromDomainRecordList(records), nil
}

// Create сохраняет ручную запись администратора
func (s *Service) Create(ctx context.Context, req *models.CreateRecordRequest) (*models.RecordResponse, error) {
	s.logger.Info("Create: creating %s record, category=%s, amount=%s", req.Type, req.Category, req.Amount.String())

	t, ok := domain.ParseFinanceType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: invalid type", ErrInvalidInput)
	}
	if !req.Amount.IsPositive() {
		s.logger.Warn("Create: non-positive amount %s", req.Amount.String())
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	record := &domain.FinanceRecord{
		Type:        t,
		Category:    strings.TrimSpace(req.Category),
		Amount:      req.Amount.Round(2),
		Description: req.Description,
		Date:        date,
	}
	if req.CreatedBy > 0 {
		record.CreatedBy = ptr.Ptr(req.CreatedBy)
	}

	created, err := s.financeRepo.Create(ctx, record)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created finance record id=%d", created.ID)
	return models.FromDomainRecord(created), nil
}

// RecordBookingIncome записывает доход по оплаченному бронированию.
// Повторная доставка того же события не создает вторую запись.
func (s *Service) RecordBookingIncome(ctx context.Context, event domain.BookingPaidEvent) (bool, error) {
	s.logger.Info("RecordBookingIncome: booking=%d, amount=%s, event=%s", event.BookingID, event.Amount.String(), event.EventID)

	if event.BookingID <= 0 {
		return false, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	date := event.PaidAt
	if date.IsZero() {
		date = time.Now()
	}

	record := &domain.FinanceRecord{
		Type:        domain.FinanceIncome,
		Category:    string(event.Sport),
		Amount:      event.Amount,
		Description: fmt.Sprintf("Booking #%d %s (%s)", event.BookingID, event.FieldName, event.BookingDate),
		Date:        date,
		BookingID:   ptr.Ptr(event.BookingID),
	}
	if event.ConfirmedBy > 0 {
		record.CreatedBy = ptr.Ptr(event.ConfirmedBy)
	}

	created, err := s.financeRepo.CreateForBooking(ctx, record)
	if err != nil {
		s.logger.Error("RecordBookingIncome: repository error for booking=%d: %v", event.BookingID, err)
		return false, fmt.Errorf("%w: RecordBookingIncome - repository error: %w", ErrInternal, err)
	}

	if !created {
		s.logger.Warn("RecordBookingIncome: income for booking=%d already recorded", event.BookingID)
		return false, nil
	}

	s.logger.Info("RecordBookingIncome: recorded income id=%d for booking=%d", record.ID, event.BookingID)
	return true, nil
}

package fields

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
)

// Service сервис справочника полей
type Service struct {
	fieldRepo FieldRepository
	txManager TransactionManager
	prices    domain.PriceTable
	logger    Logger
}

// NewService создает новый экземпляр сервиса полей
func NewService(
	fieldRepo FieldRepository,
	txManager TransactionManager,
	prices domain.PriceTable,
	logger Logger,
) *Service {
	if prices == nil {
		prices = domain.DefaultPriceTable()
	}
	return &Service{
		fieldRepo: fieldRepo,
		txManager: txManager,
		prices:    prices,
		logger:    logger,
	}
}

// List возвращает активные поля, опционально по виду спорта
func (s *Service) List(ctx context.Context, sport *string) (*models.FieldListResponse, error) {
	s.logger.Info("List: fetching fields, sport=%v", sport)

	var filter domain.FieldFilter
	if sport != nil {
		sp, err := domain.ParseSport(*sport)
		if err != nil {
			s.logger.Warn("List: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Sport = &sp
	}

	fields, err := s.fieldRepo.ListActive(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d fields", len(fields))
	return models.FromDomainFieldList(fields), nil
}

// GetByID получает активное поле
func (s *Service) GetByID(ctx context.Context, id int64) (*models.FieldResponse, error) {
	s.logger.Info("GetByID: fetching field id=%d", id)

	field, err := s.fieldRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			s.logger.Warn("GetByID: field id=%d not found", id)
			return nil, ErrFieldNotFound
		}
		s.logger.Error("GetByID: repository error for field id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainField(field), nil
}

// Create создает поле. Цена за час берется из таблицы цен по виду спорта.
func (s *Service) Create(ctx context.Context, req *models.SaveFieldRequest) (*models.FieldResponse, error) {
	s.logger.Info("Create: creating field name=%q, sport=%s", req.Name, req.Sport)

	sport, availability, err := s.parse(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	field, err := domain.NewField(req.Name, sport, availability, s.prices)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Поле и расписание записываются атомарно
	var created *domain.Field
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.fieldRepo.Create(txCtx, field)
		return err
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created field id=%d, price=%s", created.ID, created.PricePerHour.String())
	return models.FromDomainField(created), nil
}

// Update обновляет имя, вид спорта и расписание поля. Цена пересчитывается по виду спорта.
func (s *Service) Update(ctx context.Context, id int64, req *models.SaveFieldRequest) (*models.FieldResponse, error) {
	s.logger.Info("Update: updating field id=%d", id)

	sport, availability, err := s.parse(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Field
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		field, err := s.fieldRepo.GetActiveByID(txCtx, id)
		if err != nil {
			if errors.Is(err, fieldRepo.ErrFieldNotFound) {
				return ErrFieldNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		if err := field.Apply(req.Name, sport, availability, s.prices); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		updated, err = s.fieldRepo.Update(txCtx, field)
		if err != nil {
			if errors.Is(err, fieldRepo.ErrFieldNotFound) {
				return ErrFieldNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrFieldNotFound):
			s.logger.Warn("Update: field id=%d not found", id)
		case errors.Is(err, ErrInvalidInput):
			s.logger.Warn("Update: validation failed: %v", err)
		default:
			s.logger.Error("Update: failed for field id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Update: successfully updated field id=%d", id)
	return models.FromDomainField(updated), nil
}

// Delete мягко удаляет поле. Существующие бронирования сохраняются.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deactivating field id=%d", id)

	if err := s.fieldRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			s.logger.Warn("Delete: field id=%d not found", id)
			return ErrFieldNotFound
		}
		s.logger.Error("Delete: repository error for field id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deactivated field id=%d", id)
	return nil
}

func (s *Service) parse(req *models.SaveFieldRequest) (domain.Sport, []domain.DayAvailability, error) {
	sport, err := domain.ParseSport(req.Sport)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	availability, err := req.ToDomainAvailability()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return sport, availability, nil
}

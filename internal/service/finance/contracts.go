package finance

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FinanceRepository интерфейс репозитория финансовых записей
type FinanceRepository interface {
	Create(ctx context.Context, record *domain.FinanceRecord) (*domain.FinanceRecord, error)
	CreateForBooking(ctx context.Context, record *domain.FinanceRecord) (bool, error)
	List(ctx context.Context, filter domain.FinanceFilter) ([]*domain.FinanceRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

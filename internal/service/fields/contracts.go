package fields

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FieldRepository интерфейс репозитория полей
type FieldRepository interface {
	Create(ctx context.Context, field *domain.Field) (*domain.Field, error)
	GetActiveByID(ctx context.Context, id int64) (*domain.Field, error)
	ListActive(ctx context.Context, filter domain.FieldFilter) ([]*domain.Field, error)
	Update(ctx context.Context, field *domain.Field) (*domain.Field, error)
	Deactivate(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

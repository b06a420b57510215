package get_field_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindBookedSlots(ctx context.Context, fieldID int64, date time.Time, statuses []domain.BookingStatus) ([]domain.BookedSlot, error)
}

// FieldRepository интерфейс справочника полей
type FieldRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Field, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

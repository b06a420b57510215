package outbox

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/mq"
)

// Repository интерфейс хранилища outbox событий
type Repository interface {
	FetchPending(ctx context.Context, limit int, maxAttempts int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, cause string) error
}

// Dispatcher доставляет одно событие получателю
type Dispatcher interface {
	Dispatch(ctx context.Context, event *domain.OutboxEvent) error
}

// IncomeRecorder получатель события booking.paid для прямой доставки
type IncomeRecorder interface {
	RecordBookingIncome(ctx context.Context, event domain.BookingPaidEvent) (bool, error)
}

// Publisher публикует сообщения в брокер
type Publisher interface {
	Publish(ctx context.Context, msg mq.Message) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики реле
type Metrics interface {
	ObserveOutboxEvent(eventType, result string)
	SetOutboxBatch(eventType string, size int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

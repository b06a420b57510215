package financeconsumer

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// DeliverySource источник сообщений брокера
type DeliverySource interface {
	Deliveries(ctx context.Context) (<-chan amqp.Delivery, error)
}

// IncomeRecorder записывает доход по оплаченному бронированию
type IncomeRecorder interface {
	RecordBookingIncome(ctx context.Context, event domain.BookingPaidEvent) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

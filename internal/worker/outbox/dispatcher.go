package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/mq"
)

// DirectDispatcher передает события сервису финансов в том же процессе
type DirectDispatcher struct {
	recorder IncomeRecorder
}

// NewDirectDispatcher создает диспетчер прямой доставки
func NewDirectDispatcher(recorder IncomeRecorder) *DirectDispatcher {
	return &DirectDispatcher{recorder: recorder}
}

// Dispatch разбирает событие и записывает доход
func (d *DirectDispatcher) Dispatch(ctx context.Context, event *domain.OutboxEvent) error {
	switch event.EventType {
	case domain.EventBookingPaid:
		var paid domain.BookingPaidEvent
		if err := json.Unmarshal(event.Payload, &paid); err != nil {
			return fmt.Errorf("%w: event %s: %v", ErrMalformedPayload, event.EventID, err)
		}
		if _, err := d.recorder.RecordBookingIncome(ctx, paid); err != nil {
			return fmt.Errorf("%w: event %s: %w", ErrDispatch, event.EventID, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownEventType, event.EventType)
	}
}

// BrokerDispatcher публикует события в RabbitMQ; routing key совпадает с типом события
type BrokerDispatcher struct {
	publisher Publisher
}

// NewBrokerDispatcher создает диспетчер доставки через брокер
func NewBrokerDispatcher(publisher Publisher) *BrokerDispatcher {
	return &BrokerDispatcher{publisher: publisher}
}

// Dispatch публикует событие; EventID передается как MessageId для дедупликации
func (d *BrokerDispatcher) Dispatch(ctx context.Context, event *domain.OutboxEvent) error {
	err := d.publisher.Publish(ctx, mq.Message{
		ID:         event.EventID,
		RoutingKey: event.EventType,
		Body:       event.Payload,
		Timestamp:  event.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%w: event %s: %w", ErrDispatch, event.EventID, err)
	}
	return nil
}

package financeconsumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	financeService "github.com/m04kA/SMC-FieldBookingService/internal/service/finance"
)

// Consumer записывает доходы из событий booking.paid, полученных через брокер
type Consumer struct {
	source   DeliverySource
	recorder IncomeRecorder
	logger   Logger
}

// NewConsumer создает consumer финансовых событий
func NewConsumer(source DeliverySource, recorder IncomeRecorder, logger Logger) *Consumer {
	return &Consumer{
		source:   source,
		recorder: recorder,
		logger:   logger,
	}
}

// Run читает сообщения до отмены контекста или закрытия канала
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.source.Deliveries(ctx)
	if err != nil {
		return fmt.Errorf("financeconsumer: consume: %w", err)
	}

	c.logger.Info("FinanceConsumer: started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("FinanceConsumer: stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				c.logger.Warn("FinanceConsumer: delivery channel closed")
				return nil
			}
			c.Handle(ctx, d)
		}
	}
}

// Handle обрабатывает одно сообщение.
// Успех и дубликат подтверждаются, ошибка записи возвращает сообщение в очередь,
// неразбираемое сообщение отбрасывается.
func (c *Consumer) Handle(ctx context.Context, d amqp.Delivery) {
	if d.RoutingKey != domain.EventBookingPaid {
		c.logger.Warn("FinanceConsumer: skip unknown key=%s", d.RoutingKey)
		_ = d.Ack(false)
		return
	}

	var event domain.BookingPaidEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		c.logger.Error("FinanceConsumer: malformed message id=%s: %v", d.MessageId, err)
		_ = d.Reject(false)
		return
	}

	created, err := c.recorder.RecordBookingIncome(ctx, event)
	if errors.Is(err, financeService.ErrInvalidInput) {
		c.logger.Error("FinanceConsumer: invalid message id=%s: %v", d.MessageId, err)
		_ = d.Reject(false)
		return
	}
	if err != nil {
		c.logger.Error("FinanceConsumer: failed to record income for booking=%d: %v -> Nack&requeue", event.BookingID, err)
		_ = d.Nack(false, true)
		return
	}

	if !created {
		c.logger.Info("FinanceConsumer: duplicate message id=%s for booking=%d", d.MessageId, event.BookingID)
	}
	_ = d.Ack(false)
}

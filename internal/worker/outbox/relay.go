package outbox

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

const (
	resultPublished = "published"
	resultFailed    = "failed"
)

// Config параметры реле
type Config struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

// Relay периодически доставляет неопубликованные события outbox
type Relay struct {
	repo       Repository
	dispatcher Dispatcher
	txManager  TransactionManager
	metrics    Metrics
	cfg        Config
	logger     Logger
}

// NewRelay создает реле outbox
func NewRelay(
	repo Repository,
	dispatcher Dispatcher,
	txManager TransactionManager,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	return &Relay{
		repo:       repo,
		dispatcher: dispatcher,
		txManager:  txManager,
		metrics:    metrics,
		cfg:        cfg,
		logger:     logger,
	}
}

// Run обрабатывает пачки до отмены контекста
func (r *Relay) Run(ctx context.Context) {
	r.logger.Info("OutboxRelay: started, interval=%s, batch=%d", r.cfg.PollInterval, r.cfg.BatchSize)

	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := r.ProcessBatch(ctx); err != nil && ctx.Err() == nil {
			r.logger.Error("OutboxRelay: batch failed: %v", err)
		}

		select {
		case <-ctx.Done():
			r.logger.Info("OutboxRelay: stopped")
			return
		case <-ticker.C:
		}
	}
}

// ProcessBatch доставляет одну пачку событий и возвращает число опубликованных.
// Строки событий заблокированы транзакцией на время доставки; сама доставка
// выполняется вне транзакции, поэтому ошибка получателя не обрывает её.
func (r *Relay) ProcessBatch(ctx context.Context) (int, error) {
	published := 0

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		events, err := r.repo.FetchPending(txCtx, r.cfg.BatchSize, r.cfg.MaxAttempts)
		if err != nil {
			return err
		}

		r.observeBatch(events)

		for _, event := range events {
			if err := r.dispatcher.Dispatch(ctx, event); err != nil {
				r.logger.Warn("OutboxRelay: event %s (%s) attempt %d failed: %v",
					event.EventID, event.EventType, event.Attempts+1, err)
				r.observe(event.EventType, resultFailed)

				if markErr := r.repo.MarkFailed(txCtx, event.ID, err.Error()); markErr != nil {
					return markErr
				}
				if event.Attempts+1 >= r.cfg.MaxAttempts {
					r.logger.Error("OutboxRelay: event %s exhausted %d attempts", event.EventID, r.cfg.MaxAttempts)
				}
				continue
			}

			if err := r.repo.MarkPublished(txCtx, event.ID); err != nil {
				return err
			}
			r.observe(event.EventType, resultPublished)
			published++
		}

		return nil
	})

	if published > 0 {
		r.logger.Info("OutboxRelay: published %d events", published)
	}

	return published, err
}

func (r *Relay) observe(eventType, result string) {
	if r.metrics != nil {
		r.metrics.ObserveOutboxEvent(eventType, result)
	}
}

func (r *Relay) observeBatch(events []*domain.OutboxEvent) {
	if r.metrics == nil {
		return
	}
	counts := map[string]int{domain.EventBookingPaid: 0}
	for _, e := range events {
		counts[e.EventType]++
	}
	for eventType, n := range counts {
		r.metrics.SetOutboxBatch(eventType, n)
	}
}

package outbox

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

const (
	tableOutbox = "outbox_events"

	maxErrorLength = 1000
)

// Repository репозиторий outbox событий
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр outbox репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue сохраняет событие для последующей доставки
func (r *Repository) Enqueue(ctx context.Context, event *domain.OutboxEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// JSONB передается строкой: []byte lib/pq кодирует как bytea
	query, args, err := psqlbuilder.Insert(tableOutbox).
		Columns("event_id", "event_type", "aggregate_id", "payload").
		Values(event.EventID, event.EventType, event.AggregateID, string(event.Payload)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.CreatedAt); err != nil {
		return fmt.Errorf("%w: Enqueue - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// HasEvent проверяет, есть ли событие данного типа для агрегата
func (r *Repository) HasEvent(ctx context.Context, eventType string, aggregateID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableOutbox).
		Where(squirrel.Eq{"event_type": eventType, "aggregate_id": aggregateID}).
		Limit(1).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasEvent - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasEvent - execute query: %w", ErrExecQuery, err)
	}

	return exists, nil
}

// FetchPending выбирает неопубликованные события с числом попыток меньше maxAttempts.
// Внутри транзакции строки блокируются с SKIP LOCKED, чтобы несколько реле не брали одно событие.
func (r *Repository) FetchPending(ctx context.Context, limit int, maxAttempts int) ([]*domain.OutboxEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"event_id",
		"event_type",
		"aggregate_id",
		"payload",
		"attempts",
		"last_error",
		"created_at",
		"published_at",
	).
		From(tableOutbox).
		Where(squirrel.Eq{"published_at": nil}).
		Where(squirrel.Lt{"attempts": maxAttempts}).
		OrderBy("id ASC").
		Limit(uint64(limit))

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchPending - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.OutboxEvent, 0)
	for rows.Next() {
		var e domain.OutboxEvent
		if err := rows.Scan(
			&e.ID,
			&e.EventID,
			&e.EventType,
			&e.AggregateID,
			&e.Payload,
			&e.Attempts,
			&e.LastError,
			&e.CreatedAt,
			&e.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: FetchPending - scan event: %v", ErrScanRow, err)
		}
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchPending - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// MarkPublished отмечает событие доставленным
func (r *Repository) MarkPublished(ctx context.Context, id int64) error {
	return r.update(ctx, "MarkPublished", psqlbuilder.Update(tableOutbox).
		Set("published_at", squirrel.Expr("NOW()")).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Where(squirrel.Eq{"id": id}))
}

// MarkFailed увеличивает счетчик попыток и сохраняет последнюю ошибку
func (r *Repository) MarkFailed(ctx context.Context, id int64, cause string) error {
	cause = truncate(cause, maxErrorLength)
	return r.update(ctx, "MarkFailed", psqlbuilder.Update(tableOutbox).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", cause).
		Where(squirrel.Eq{"id": id}))
}

func (r *Repository) update(ctx context.Context, op string, b squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// truncate обрезает строку до limit рун, не разрывая многобайтовые символы
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

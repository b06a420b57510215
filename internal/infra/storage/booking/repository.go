package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

const (
	tableBookings = "bookings"

	// pqExclusionViolation нарушение ограничения bookings_no_overlap
	pqExclusionViolation = "23P01"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"field_id",
	"booking_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"total_price",
	"customer_name",
	"customer_phone",
	"notes",
	"proof_of_payment",
	"payment_method",
	"payment_status",
	"status",
	"paid_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований (Booking Ledger)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// Если БД отклоняет вставку ограничением bookings_no_overlap, возвращается ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	interval, err := booking.Interval()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - booking interval: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"user_id",
			"field_id",
			"booking_date",
			"start_time",
			"end_time",
			"start_minutes",
			"end_minutes",
			"duration_minutes",
			"total_price",
			"customer_name",
			"customer_phone",
			"notes",
			"proof_of_payment",
			"payment_method",
			"payment_status",
			"status",
		).
		Values(
			booking.UserID,
			booking.FieldID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
			interval.Start,
			interval.End,
			booking.DurationMinutes,
			booking.TotalPrice,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.Notes,
			booking.ProofOfPayment,
			booking.PaymentMethod,
			booking.PaymentStatus,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation {
			return nil, ErrSlotNotAvailable
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// LockSlot берет транзакционную advisory-блокировку на пару (поле, дата).
// Конкурентные попытки забронировать одно поле на одну дату выполняются последовательно.
func (r *Repository) LockSlot(ctx context.Context, fieldID int64, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockSlot", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	key := fmt.Sprintf("booking:%d:%s", fieldID, date.Format(domain.DateFormat))
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key); err != nil {
		return fmt.Errorf("%w: LockSlot - acquire lock: %w", ErrExecQuery, err)
	}

	return nil
}

// FindOverlapping ищет бронирование на то же поле и дату со статусом pending/active,
// пересекающееся с интервалом запроса. Возвращает nil, если пересечений нет.
//
// Пересечение определяется тремя условиями:
//   - новое начинается во время существующего
//   - новое заканчивается во время существующего
//   - новое полностью накрывает существующее
func (r *Repository) FindOverlapping(ctx context.Context, q domain.SlotQuery) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"field_id":     q.FieldID,
			"booking_date": q.Date.Format(domain.DateFormat),
			"status":       statusStrings(domain.SlotHoldingStatuses),
		}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.LtOrEq{"start_minutes": q.Interval.Start},
				squirrel.Gt{"end_minutes": q.Interval.Start},
			},
			squirrel.And{
				squirrel.Lt{"start_minutes": q.Interval.End},
				squirrel.GtOrEq{"end_minutes": q.Interval.End},
			},
			squirrel.And{
				squirrel.GtOrEq{"start_minutes": q.Interval.Start},
				squirrel.LtOrEq{"end_minutes": q.Interval.End},
			},
		}).
		OrderBy("start_minutes ASC").
		Limit(1)

	if q.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *q.ExcludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// FindBookedSlots возвращает интервалы бронирований поля на дату с указанными статусами,
// упорядоченные по времени начала
func (r *Repository) FindBookedSlots(ctx context.Context, fieldID int64, date time.Time, statuses []domain.BookingStatus) ([]domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time", "end_time").
		From(tableBookings).
		Where(squirrel.Eq{
			"field_id":     fieldID,
			"booking_date": date.Format(domain.DateFormat),
			"status":       statusStrings(statuses),
		}).
		OrderBy("start_minutes ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindBookedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBookedSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.BookedSlot, 0)
	for rows.Next() {
		var slot domain.BookedSlot
		if err := rows.Scan(&slot.StartTime, &slot.EndTime); err != nil {
			return nil, fmt.Errorf("%w: FindBookedSlots - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindBookedSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// List возвращает бронирования по фильтру, новые даты первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(bookingColumns...).From(tableBookings), filter).
		OrderBy("booking_date DESC", "start_minutes DESC", "id DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Count возвращает количество бронирований по фильтру (без учета пагинации)
func (r *Repository) Count(ctx context.Context, filter domain.BookingFilter) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(tableBookings), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan total: %w", ErrScanRow, err)
	}

	return total, nil
}

// UpdatePayment сохраняет результат проверки оплаты
func (r *Repository) UpdatePayment(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("payment_status", booking.PaymentStatus).
		Set("status", booking.Status).
		Set("paid_at", booking.PaidAt).
		Set("cancelled_at", booking.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// Cancel переводит бронирование в статус cancelled
func (r *Repository) Cancel(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", booking.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

func applyFilter(b squirrel.SelectBuilder, filter domain.BookingFilter) squirrel.SelectBuilder {
	if filter.UserID != nil {
		b = b.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.FieldID != nil {
		b = b.Where(squirrel.Eq{"field_id": *filter.FieldID})
	}
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.PaymentStatus != nil {
		b = b.Where(squirrel.Eq{"payment_status": *filter.PaymentStatus})
	}
	if filter.DateFrom != nil {
		b = b.Where(squirrel.GtOrEq{"booking_date": filter.DateFrom.Format(domain.DateFormat)})
	}
	if filter.DateTo != nil {
		b = b.Where(squirrel.LtOrEq{"booking_date": filter.DateTo.Format(domain.DateFormat)})
	}
	return b
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.FieldID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationMinutes,
		&booking.TotalPrice,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.Notes,
		&booking.ProofOfPayment,
		&booking.PaymentMethod,
		&booking.PaymentStatus,
		&booking.Status,
		&booking.PaidAt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

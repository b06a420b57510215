package finance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

const tableFinance = "finance_records"

var insertColumns = []string{
	"type",
	"category",
	"amount",
	"description",
	"record_date",
	"booking_id",
	"created_by",
}

// Repository репозиторий финансовых записей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория финансовых записей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет финансовую запись
func (r *Repository) Create(ctx context.Context, record *domain.FinanceRecord) (*domain.FinanceRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertBuilder(record).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return record, nil
}

// CreateForBooking сохраняет доход по бронированию.
// На одно бронирование приходится не больше одной записи: повторная вставка игнорируется
// и возвращает created = false.
func (r *Repository) CreateForBooking(ctx context.Context, record *domain.FinanceRecord) (bool, error) {
	if record.BookingID == nil {
		return false, fmt.Errorf("%w: CreateForBooking - booking id is required", ErrBuildQuery)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertBuilder(record).
		Suffix("ON CONFLICT (booking_id) WHERE booking_id IS NOT NULL DO NOTHING RETURNING id, created_at").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CreateForBooking - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CreateForBooking - execute insert: %w", ErrExecQuery, err)
	}

	return true, nil
}

// List возвращает записи по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.FinanceFilter) ([]*domain.FinanceRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"type",
		"category",
		"amount",
		"description",
		"record_date",
		"booking_id",
		"created_by",
		"created_at",
	).
		From(tableFinance).
		OrderBy("record_date DESC", "id DESC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"record_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"record_date": filter.To.Format(domain.DateFormat)})
	}
	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": *filter.Type})
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

	records := make([]*domain.FinanceRecord, 0)
	for rows.Next() {
		var rec domain.FinanceRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Type,
			&rec.Category,
			&rec.Amount,
			&rec.Description,
			&rec.Date,
			&rec.BookingID,
			&rec.CreatedBy,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan record: %v", ErrScanRow, err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

func insertBuilder(record *domain.FinanceRecord) squirrel.InsertBuilder {
	return psqlbuilder.Insert(tableFinance).
		Columns(insertColumns...).
		Values(
			record.Type,
			record.Category,
			record.Amount,
			record.Description,
			record.Date.Format(domain.DateFormat),
			record.BookingID,
			record.CreatedBy,
		)
}

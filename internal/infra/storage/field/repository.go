package field

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

const (
	tableFields       = "fields"
	tableAvailability = "field_availability"
)

var fieldColumns = []string{
	"id",
	"name",
	"sport",
	"price_per_hour",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий полей (Field Directory)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория полей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет поле и его расписание.
// Вызывающий код должен обернуть вызов в транзакцию, чтобы поле и расписание записались атомарно.
func (r *Repository) Create(ctx context.Context, field *domain.Field) (*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableFields).
		Columns("name", "sport", "price_per_hour", "is_active").
		Values(field.Name, field.Sport, field.PricePerHour, field.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&field.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	field.CreatedAt = createdAt.Time
	field.UpdatedAt = updatedAt.Time

	if err := r.insertAvailability(ctx, field.ID, field.Availability); err != nil {
		return nil, err
	}

	return field, nil
}

// GetByID получает поле по ID независимо от признака активности
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetActiveByID получает активное поле по ID.
// Неактивные поля не видны и возвращают ErrFieldNotFound.
func (r *Repository) GetActiveByID(ctx context.Context, id int64) (*domain.Field, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id, "is_active": true})
}

// ListActive возвращает активные поля, опционально по виду спорта
func (r *Repository) ListActive(ctx context.Context, filter domain.FieldFilter) ([]*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(fieldColumns...).
		From(tableFields).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC", "id ASC")

	if filter.Sport != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"sport": *filter.Sport})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	fields := make([]*domain.Field, 0)
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan field: %v", ErrScanRow, err)
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	if len(fields) == 0 {
		return fields, nil
	}

	ids := make([]int64, len(fields))
	byID := make(map[int64]*domain.Field, len(fields))
	for i, f := range fields {
		ids[i] = f.ID
		byID[f.ID] = f
	}

	rules, err := r.loadAvailability(ctx, ids)
	if err != nil {
		return nil, err
	}
	for fieldID, list := range rules {
		if f, ok := byID[fieldID]; ok {
			f.Availability = list
		}
	}

	return fields, nil
}

// Update сохраняет имя, вид спорта, цену и расписание поля.
// Расписание заменяется целиком.
func (r *Repository) Update(ctx context.Context, field *domain.Field) (*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableFields).
		Set("name", field.Name).
		Set("sport", field.Sport).
		Set("price_per_hour", field.PricePerHour).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": field.ID, "is_active": true}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&field.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFieldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete(tableAvailability).
		Where(squirrel.Eq{"field_id": field.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build delete availability query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: Update - delete availability: %w", ErrExecQuery, err)
	}

	if err := r.insertAvailability(ctx, field.ID, field.Availability); err != nil {
		return nil, err
	}

	return field, nil
}

// Deactivate мягко удаляет поле (is_active = false)
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableFields).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrFieldNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(fieldColumns...).
		From(tableFields).
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: get - build select query: %v", ErrBuildQuery, err)
	}

	f, err := scanField(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFieldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get - scan field: %w", ErrScanRow, err)
	}

	rules, err := r.loadAvailability(ctx, []int64{f.ID})
	if err != nil {
		return nil, err
	}
	f.Availability = rules[f.ID]

	return f, nil
}

func (r *Repository) insertAvailability(ctx context.Context, fieldID int64, rules []domain.DayAvailability) error {
	if len(rules) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(tableAvailability).
		Columns("field_id", "day_of_week", "open_time", "close_time")
	for _, rule := range rules {
		insert = insert.Values(fieldID, rule.DayOfWeek, rule.OpenTime, rule.CloseTime)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertAvailability - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertAvailability - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// loadAvailability загружает расписания для набора полей, упорядоченные по дню недели
func (r *Repository) loadAvailability(ctx context.Context, fieldIDs []int64) (map[int64][]domain.DayAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("field_id", "day_of_week", "open_time", "close_time").
		From(tableAvailability).
		Where(squirrel.Eq{"field_id": fieldIDs}).
		OrderBy("field_id ASC", "day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadAvailability - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.DayAvailability, len(fieldIDs))
	for rows.Next() {
		var (
			fieldID int64
			rule    domain.DayAvailability
		)
		if err := rows.Scan(&fieldID, &rule.DayOfWeek, &rule.OpenTime, &rule.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: loadAvailability - scan rule: %v", ErrScanRow, err)
		}
		result[fieldID] = append(result[fieldID], rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadAvailability - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanField(row rowScanner) (*domain.Field, error) {
	var f domain.Field
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Sport,
		&f.PricePerHour,
		&f.IsActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return &f, nil
}

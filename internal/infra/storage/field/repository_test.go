package field

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var availabilityColumns = []string{"field_id", "day_of_week", "open_time", "close_time"}

func TestRepository_GetActiveByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM fields WHERE id = $1 AND is_active = $2")).
		WithArgs(int64(3), true).
		WillReturnRows(sqlmock.NewRows(fieldColumns).
			AddRow(int64(3), "Court A", "Padel", "200000.00", true, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM field_availability WHERE field_id IN ($1)")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(availabilityColumns).
			AddRow(int64(3), 1, "08:00:00", "22:00:00").
			AddRow(int64(3), 5, "08:00:00", "24:00:00"))

	repo := NewRepository(db)
	f, err := repo.GetActiveByID(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "Court A", f.Name)
	assert.Equal(t, domain.SportPadel, f.Sport)
	assert.True(t, decimal.NewFromInt(200000).Equal(f.PricePerHour))
	assert.Equal(t, []domain.DayAvailability{
		{DayOfWeek: 1, OpenTime: "08:00", CloseTime: "22:00"},
		{DayOfWeek: 5, OpenTime: "08:00", CloseTime: "24:00"},
	}, f.Availability)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetActiveByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM fields")).
		WillReturnRows(sqlmock.NewRows(fieldColumns))

	_, err = NewRepository(db).GetActiveByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fields (name,sport,price_per_hour,is_active) VALUES ($1,$2,$3,$4) RETURNING id, created_at, updated_at")).
		WithArgs("Court A", "Futsal", sqlmock.AnyArg(), true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO field_availability (field_id,day_of_week,open_time,close_time) VALUES ($1,$2,$3,$4),($5,$6,$7,$8)")).
		WithArgs(int64(10), 1, "08:00", "22:00", int64(10), 2, "09:00", "21:00").
		WillReturnResult(sqlmock.NewResult(0, 2))

	f := &domain.Field{
		Name:         "Court A",
		Sport:        domain.SportFutsal,
		PricePerHour: decimal.NewFromInt(150000),
		IsActive:     true,
		Availability: []domain.DayAvailability{
			{DayOfWeek: 1, OpenTime: "08:00", CloseTime: "22:00"},
			{DayOfWeek: 2, OpenTime: "09:00", CloseTime: "21:00"},
		},
	}

	created, err := NewRepository(db).Create(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_ReplacesAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE fields SET name = $1, sport = $2, price_per_hour = $3, updated_at = NOW() WHERE id = $4 AND is_active = $5 RETURNING updated_at")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM field_availability WHERE field_id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO field_availability")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	f := &domain.Field{
		ID:           3,
		Name:         "Court B",
		Sport:        domain.SportBadminton,
		PricePerHour: decimal.NewFromInt(50000),
		Availability: []domain.DayAvailability{{DayOfWeek: 0, OpenTime: "10:00", CloseTime: "18:00"}},
	}

	_, err = NewRepository(db).Update(context.Background(), f)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_Inactive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE fields")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	_, err = NewRepository(db).Update(context.Background(), &domain.Field{ID: 3, Name: "x", Sport: domain.SportFutsal})
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestRepository_Deactivate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE fields SET is_active = $1, updated_at = NOW() WHERE id = $2 AND is_active = $3")).
		WithArgs(false, int64(3), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE fields SET is_active")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	require.NoError(t, repo.Deactivate(context.Background(), 3))
	assert.ErrorIs(t, repo.Deactivate(context.Background(), 3), ErrFieldNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	sport := domain.SportFutsal

	mock.ExpectQuery(regexp.QuoteMeta("FROM fields WHERE is_active = $1 AND sport = $2 ORDER BY name ASC, id ASC")).
		WithArgs(true, "Futsal").
		WillReturnRows(sqlmock.NewRows(fieldColumns).
			AddRow(int64(1), "A", "Futsal", "150000", true, now, now).
			AddRow(int64(2), "B", "Futsal", "150000", true, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM field_availability WHERE field_id IN ($1,$2)")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(availabilityColumns).
			AddRow(int64(2), 3, "07:00", "23:00"))

	fields, err := NewRepository(db).ListActive(context.Background(), domain.FieldFilter{Sport: &sport})
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Empty(t, fields[0].Availability)
	assert.Len(t, fields[1].Availability, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

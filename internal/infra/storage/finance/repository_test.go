package finance

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
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

func incomeRecord() *domain.FinanceRecord {
	return &domain.FinanceRecord{
		Type:        domain.FinanceIncome,
		Category:    "Futsal",
		Amount:      decimal.NewFromInt(150000),
		Description: "Booking #42",
		Date:        time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
		BookingID:   ptr.Ptr(int64(42)),
		CreatedBy:   ptr.Ptr(int64(1)),
	}
}

func TestRepository_CreateForBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO finance_records (type,category,amount,description,record_date,booking_id,created_by) VALUES ($1,$2,$3,$4,$5,$6,$7) ON CONFLICT (booking_id) WHERE booking_id IS NOT NULL DO NOTHING RETURNING id, created_at")).
		WithArgs("income", "Futsal", sqlmock.AnyArg(), "Booking #42", "2026-10-14", int64(42), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))

	created, err := NewRepository(db).CreateForBooking(context.Background(), incomeRecord())
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateForBooking_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (booking_id)")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

	created, err := NewRepository(db).CreateForBooking(context.Background(), incomeRecord())
	require.NoError(t, err)
	assert.False(t, created)
}

func TestRepository_CreateForBooking_RequiresBooking(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := incomeRecord()
	rec.BookingID = nil

	_, err = NewRepository(db).CreateForBooking(context.Background(), rec)
	assert.ErrorIs(t, err, ErrBuildQuery)
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	typ := domain.FinanceExpense
	created := time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM finance_records WHERE record_date >= $1 AND type = $2 ORDER BY record_date DESC, id DESC")).
		WithArgs("2026-10-01", "expense").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "category", "amount", "description", "record_date", "booking_id", "created_by", "created_at"}).
			AddRow(int64(1), "expense", "Maintenance", "300000.00", "Nets", time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), nil, int64(1), created))

	records, err := NewRepository(db).List(context.Background(), domain.FinanceFilter{From: &from, Type: &typ})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.FinanceExpense, records[0].Type)
	assert.True(t, decimal.NewFromInt(300000).Equal(records[0].Amount))
	assert.Nil(t, records[0].BookingID)
	require.NotNil(t, records[0].CreatedBy)
	assert.Equal(t, int64(1), *records[0].CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

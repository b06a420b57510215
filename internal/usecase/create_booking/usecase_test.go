package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// 2026-10-14 среда
var testNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookings struct {
	mu        sync.Mutex
	bookings  []*domain.Booking
	nextID    int64
	locks     int
	createErr error
}

func (f *fakeBookings) LockSlot(ctx context.Context, fieldID int64, date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locks++
	return nil
}

func (f *fakeBookings) FindOverlapping(ctx context.Context, q domain.SlotQuery) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.FieldID != q.FieldID || !b.BookingDate.Equal(q.Date) || !b.HoldsSlot() {
			continue
		}
		interval, err := b.Interval()
		if err != nil {
			return nil, err
		}
		if interval.Overlaps(q.Interval) {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookings) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = testNow
	b.UpdatedAt = testNow
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeBookings) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakeFields struct {
	mu     sync.Mutex
	fields map[int64]*domain.Field
	calls  int
}

func (f *fakeFields) GetActiveByID(ctx context.Context, id int64) (*domain.Field, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	field, ok := f.fields[id]
	if !ok || !field.IsActive {
		return nil, fieldRepo.ErrFieldNotFound
	}
	return field, nil
}

type fakeUsers struct {
	err error
}

func (f *fakeUsers) GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &userservice.User{ID: userID, Name: "Budi", Email: "budi@example.com", Phone: "+62811"}, nil
}

// serialTx выполняет транзакции по одной, как SERIALIZABLE с блокировкой слота
type serialTx struct {
	mu sync.Mutex
}

func (s *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

type fixture struct {
	bookings *fakeBookings
	fields   *fakeFields
	users    *fakeUsers
	uc       *UseCase
}

func newFixture() *fixture {
	var rules []domain.DayAvailability
	// Воскресенье (0) закрыто
	for day := 1; day <= 6; day++ {
		rules = append(rules, domain.DayAvailability{DayOfWeek: day, OpenTime: "08:00", CloseTime: "22:00"})
	}

	fx := &fixture{
		bookings: &fakeBookings{},
		fields: &fakeFields{fields: map[int64]*domain.Field{
			1: {ID: 1, Name: "Futsal A", Sport: domain.SportFutsal, PricePerHour: decimal.NewFromInt(150000), Availability: rules, IsActive: true},
			2: {ID: 2, Name: "Old court", Sport: domain.SportPadel, PricePerHour: decimal.NewFromInt(200000), Availability: rules, IsActive: false},
		}},
		users: &fakeUsers{},
	}
	fx.uc = NewUseCase(fx.bookings, fx.fields, fx.users, &serialTx{}, fixedTime{now: testNow}, 7, logger.Nop())
	return fx
}

func validRequest() *Request {
	return &Request{
		UserID:         7,
		FieldID:        1,
		Date:           time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		EndTime:        "12:00",
		CustomerName:   "Budi",
		CustomerPhone:  "+62811",
		Notes:          ptr.Ptr("bring balls"),
		ProofOfPayment: "https://cdn.example.com/proof/1.jpg",
	}
}

func TestExecute_Success(t *testing.T) {
	fx := newFixture()

	resp, err := fx.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, "transfer", resp.PaymentMethod)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.True(t, decimal.NewFromInt(2).Equal(resp.TotalHours))
	assert.True(t, decimal.NewFromInt(300000).Equal(resp.TotalPrice))
	require.NotNil(t, resp.Field)
	assert.Equal(t, "Futsal", resp.Field.Sport)
	require.NotNil(t, resp.Owner)
	assert.Equal(t, "budi@example.com", resp.Owner.Email)
	assert.Equal(t, 1, fx.bookings.locks)
}

func TestExecute_NormalizesTimes(t *testing.T) {
	fx := newFixture()
	req := validRequest()
	req.StartTime = "9:00"
	req.EndTime = "10:30"

	resp, err := fx.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.StartTime.String())
	assert.True(t, decimal.NewFromInt(225000).Equal(resp.TotalPrice))
}

func TestExecute_NormalizesCustomerPhone(t *testing.T) {
	fx := newFixture()
	req := validRequest()
	req.CustomerPhone = "0812-3456-7890"

	resp, err := fx.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "+6281234567890", resp.CustomerPhone)

	req = validRequest()
	req.StartTime = "14:00"
	req.EndTime = "15:00"
	req.CustomerPhone = " n/a "

	resp, err = fx.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "n/a", resp.CustomerPhone)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{name: "no user", mutate: func(r *Request) { r.UserID = 0 }, want: ErrInvalidInput},
		{name: "missing proof", mutate: func(r *Request) { r.ProofOfPayment = "  " }, want: ErrPaymentProofRequired},
		{name: "yesterday", mutate: func(r *Request) { r.Date = testNow.AddDate(0, 0, -1) }, want: ErrPastDate},
		{name: "beyond horizon", mutate: func(r *Request) { r.Date = time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC) }, want: ErrDateTooFarInFuture},
		{name: "unknown field", mutate: func(r *Request) { r.FieldID = 99 }, want: ErrFieldNotFound},
		{name: "inactive field", mutate: func(r *Request) { r.FieldID = 2 }, want: ErrFieldNotFound},
		{name: "malformed start", mutate: func(r *Request) { r.StartTime = "25:00" }, want: ErrInvalidTime},
		{name: "malformed end", mutate: func(r *Request) { r.EndTime = "noon" }, want: ErrInvalidTime},
		{name: "empty range", mutate: func(r *Request) { r.EndTime = "10:00" }, want: ErrInvalidTimeRange},
		{name: "off step", mutate: func(r *Request) { r.StartTime, r.EndTime = "10:00", "10:10" }, want: ErrInvalidDuration},
		{name: "reversed range", mutate: func(r *Request) { r.StartTime, r.EndTime = "12:00", "10:00" }, want: ErrInvalidTimeRange},
		{name: "closed on sunday", mutate: func(r *Request) { r.Date = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) }, want: ErrFieldClosed},
		{name: "before opening", mutate: func(r *Request) { r.StartTime = "07:00" }, want: ErrOutsideOpenHours},
		{name: "after closing", mutate: func(r *Request) { r.StartTime, r.EndTime = "21:00", "23:00" }, want: ErrOutsideOpenHours},
		{name: "no customer name", mutate: func(r *Request) { r.CustomerName = "" }, want: ErrCustomerInfoRequired},
		{name: "no customer phone", mutate: func(r *Request) { r.CustomerPhone = " " }, want: ErrCustomerInfoRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := fx.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, fx.bookings.count())
		})
	}
}

func TestExecute_DateBoundaries(t *testing.T) {
	fx := newFixture()

	today := validRequest()
	today.Date = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	_, err := fx.uc.Execute(context.Background(), today)
	require.NoError(t, err)

	lastDay := validRequest()
	lastDay.Date = time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)
	_, err = fx.uc.Execute(context.Background(), lastDay)
	require.NoError(t, err)
}

func TestExecute_CheckOrder(t *testing.T) {
	fx := newFixture()

	// Без чека и в прошлом: побеждает проверка чека
	req := validRequest()
	req.ProofOfPayment = ""
	req.Date = testNow.AddDate(0, 0, -3)
	_, err := fx.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPaymentProofRequired)

	// Прошедшая дата проверяется до поиска поля
	req = validRequest()
	req.Date = testNow.AddDate(0, 0, -3)
	req.FieldID = 99
	_, err = fx.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastDate)
	assert.Equal(t, 0, fx.fields.calls)

	// Неизвестное поле проверяется до формата времени
	req = validRequest()
	req.FieldID = 99
	req.StartTime = "bad"
	_, err = fx.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFieldNotFound)

	// Пересечение обнаруживается раньше проверки данных клиента
	_, err = fx.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	req = validRequest()
	req.CustomerName = ""
	_, err = fx.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_Overlaps(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    error
	}{
		{name: "identical", start: "10:00", end: "12:00", wantErr: ErrSlotNotAvailable},
		{name: "starts inside", start: "11:00", end: "13:00", wantErr: ErrSlotNotAvailable},
		{name: "ends inside", start: "09:00", end: "11:00", wantErr: ErrSlotNotAvailable},
		{name: "covers", start: "09:00", end: "13:00", wantErr: ErrSlotNotAvailable},
		{name: "inside", start: "10:30", end: "11:30", wantErr: ErrSlotNotAvailable},
		{name: "adjacent after", start: "12:00", end: "13:00"},
		{name: "adjacent before", start: "08:00", end: "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture()
			_, err := fx.uc.Execute(context.Background(), validRequest())
			require.NoError(t, err)

			req := validRequest()
			req.StartTime, req.EndTime = tt.start, tt.end
			_, err = fx.uc.Execute(context.Background(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 1, fx.bookings.count())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 2, fx.bookings.count())
		})
	}
}

func TestExecute_OtherFieldOrDateDoesNotConflict(t *testing.T) {
	fx := newFixture()
	fx.fields.fields[3] = &domain.Field{
		ID: 3, Name: "Futsal B", Sport: domain.SportFutsal, PricePerHour: decimal.NewFromInt(150000),
		Availability: fx.fields.fields[1].Availability, IsActive: true,
	}

	_, err := fx.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	other := validRequest()
	other.FieldID = 3
	_, err = fx.uc.Execute(context.Background(), other)
	require.NoError(t, err)

	nextDay := validRequest()
	nextDay.Date = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	_, err = fx.uc.Execute(context.Background(), nextDay)
	require.NoError(t, err)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	fx := newFixture()
	_, err := fx.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	fx.bookings.bookings[0].Cancel(testNow)

	_, err = fx.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ConstraintViolationIsConflict(t *testing.T) {
	fx := newFixture()
	fx.bookings.createErr = bookingRepo.ErrSlotNotAvailable

	_, err := fx.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_RepositoryFailureIsInternal(t *testing.T) {
	fx := newFixture()
	fx.bookings.createErr = errors.New("connection reset")

	_, err := fx.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_NotesTooLong(t *testing.T) {
	fx := newFixture()
	req := validRequest()
	long := make([]rune, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'я'
	}
	req.Notes = ptr.Ptr(string(long))

	_, err := fx.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UserServiceDegradation(t *testing.T) {
	fx := newFixture()
	fx.users.err = userservice.ErrServiceDegraded

	resp, err := fx.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Nil(t, resp.Owner)
	assert.NotNil(t, resp.Field)
}

func TestExecute_ConcurrentRequestsForSameSlot(t *testing.T) {
	fx := newFixture()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			req := validRequest()
			req.UserID = userID

			_, err := fx.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, fx.bookings.count())
}

func TestExecute_PriceFollowsDuration(t *testing.T) {
	for _, start := range []string{"08:00", "09:30", "14:00"} {
		for minutes := 30; minutes <= 240; minutes += 30 {
			fx := newFixture()

			startTS, err := types.NewTimeStringFromString(start)
			require.NoError(t, err)
			end, err := startTS.AddMinutes(minutes)
			require.NoError(t, err)

			req := validRequest()
			req.StartTime = start
			req.EndTime = end.String()

			resp, err := fx.uc.Execute(context.Background(), req)
			require.NoError(t, err, "start=%s minutes=%d", start, minutes)

			want := decimal.NewFromInt(150000).Mul(decimal.NewFromInt(int64(minutes))).Div(decimal.NewFromInt(60))
			assert.True(t, want.Equal(resp.TotalPrice), "start=%s minutes=%d price=%s", start, minutes, resp.TotalPrice)
		}
	}
}

package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

type stubUseCase struct {
	req  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.req = req
	return s.resp, s.err
}

const validBody = `{
	"fieldId": 1,
	"bookingDate": "2026-10-15",
	"startTime": "10:00",
	"endTime": "12:00",
	"customerName": "Budi",
	"customerPhone": "+62811",
	"proofOfPayment": "https://cdn.example/receipt.jpg"
}`

func serve(h *Handler, userID int64, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithIdentity(req.Context(), userID, "user"))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:            10,
		UserID:        7,
		FieldID:       1,
		BookingDate:   time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "12:00",
		TotalHours:    decimal.NewFromInt(2),
		TotalPrice:    decimal.NewFromInt(300000),
		PaymentMethod: "transfer",
		PaymentStatus: "pending",
		Status:        "pending",
		Field:         &createBooking.FieldInfo{ID: 1, Name: "Futsal A", Sport: "Futsal", PricePerHour: decimal.NewFromInt(150000)},
	}}

	rec := serve(NewHandler(uc, logger.Nop()), 7, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.req)
	assert.Equal(t, int64(7), uc.req.UserID)
	assert.Equal(t, "2026-10-15", uc.req.Date.Format("2006-01-02"))

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "2026-10-15", resp.BookingDate)
	assert.Equal(t, "pending", resp.Status)
	assert.True(t, decimal.NewFromInt(300000).Equal(resp.TotalPrice))
	require.NotNil(t, resp.Field)
	assert.Nil(t, resp.Owner)
}

func TestHandle_RequestErrors(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.Nop())

	assert.Equal(t, http.StatusUnauthorized, serve(h, 0, validBody).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, 7, "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, 7, `{"fieldId": 1, "unknown": true}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, 7, `{"fieldId": 1, "bookingDate": "15.10.2026", "proofOfPayment": "receipt"}`).Code)
	assert.Nil(t, uc.req)
}

func TestHandle_ProofCheckedBeforeDate(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.Nop())

	rec := serve(h, 7, `{"fieldId": 1, "bookingDate": "15.10.2026", "proofOfPayment": "  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgProofRequired, resp.Message)

	rec = serve(h, 7, `{"fieldId": 1, "bookingDate": "15.10.2026", "proofOfPayment": "receipt"}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgInvalidDate, resp.Message)
	assert.Nil(t, uc.req)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{createBooking.ErrFieldNotFound, http.StatusNotFound},
		{createBooking.ErrPaymentProofRequired, http.StatusBadRequest},
		{createBooking.ErrPastDate, http.StatusBadRequest},
		{fmt.Errorf("%w: can only book 7 days in advance", createBooking.ErrDateTooFarInFuture), http.StatusBadRequest},
		{createBooking.ErrInvalidTime, http.StatusBadRequest},
		{createBooking.ErrInvalidTimeRange, http.StatusBadRequest},
		{createBooking.ErrInvalidDuration, http.StatusBadRequest},
		{createBooking.ErrFieldClosed, http.StatusBadRequest},
		{createBooking.ErrOutsideOpenHours, http.StatusBadRequest},
		{createBooking.ErrCustomerInfoRequired, http.StatusBadRequest},
		{createBooking.ErrInvalidInput, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(NewHandler(&stubUseCase{err: tt.err}, logger.Nop()), 7, validBody)
			assert.Equal(t, tt.code, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
			assert.NotContains(t, resp.Message, "boom")
		})
	}
}

package confirm_payment

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

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	confirmPayment "github.com/m04kA/SMC-FieldBookingService/internal/usecase/confirm_payment"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

type stubUseCase struct {
	req *confirmPayment.Request
	err error
}

func (s *stubUseCase) Execute(ctx context.Context, req *confirmPayment.Request) (*confirmPayment.Response, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	paidAt := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	return &confirmPayment.Response{
		Booking: &domain.Booking{
			ID:            req.BookingID,
			BookingDate:   time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime:     "10:00",
			EndTime:       "12:00",
			TotalPrice:    decimal.NewFromInt(300000),
			Status:        domain.StatusActive,
			PaymentStatus: domain.PaymentPaid,
			PaidAt:        &paidAt,
		},
		Changed:         true,
		IncomeScheduled: true,
	}, nil
}

func serve(uc *stubUseCase, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/bookings/{bookingId}/payment", NewHandler(uc, logger.Nop()).Handle)

	req := httptest.NewRequest(http.MethodPatch, "/admin/bookings/"+id+"/payment", bytes.NewBufferString(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), 1, domain.RoleAdmin))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Paid(t *testing.T) {
	uc := &stubUseCase{}
	rec := serve(uc, "5", `{"paymentStatus":"paid"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, &confirmPayment.Request{BookingID: 5, PaymentStatus: "paid", AdminID: 1}, uc.req)

	var resp ConfirmPaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Changed)
	assert.True(t, resp.IncomeScheduled)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, "active", resp.Booking.Status)
	assert.Equal(t, "paid", resp.Booking.PaymentStatus)
	require.NotNil(t, resp.Booking.PaidAt)
	assert.Equal(t, "2026-10-14T12:00:00Z", *resp.Booking.PaidAt)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
		err  error
		code int
	}{
		{"bad id", "x", `{"paymentStatus":"paid"}`, nil, http.StatusBadRequest},
		{"bad body", "5", `paid`, nil, http.StatusBadRequest},
		{"not found", "5", `{"paymentStatus":"paid"}`, confirmPayment.ErrBookingNotFound, http.StatusNotFound},
		{"bad decision", "5", `{"paymentStatus":"pending"}`, confirmPayment.ErrInvalidDecision, http.StatusBadRequest},
		{"transition", "5", `{"paymentStatus":"paid"}`, fmt.Errorf("%w: status=cancelled", confirmPayment.ErrInvalidTransition), http.StatusConflict},
		{"internal", "5", `{"paymentStatus":"paid"}`, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.id, tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

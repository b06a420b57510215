package get_user_bookings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

type stubService struct {
	req *models.GetUserBookingsRequest
	err error
}

func (s *stubService) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}}, Total: 1, Limit: req.Limit}, nil
}

func serve(svc *stubService, userID int64, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID > 0 {
		req = req.WithContext(middleware.WithIdentity(req.Context(), userID, "user"))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_BuildsRequest(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, 7, "/bookings?status=active&limit=5&offset=10")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.req)
	assert.Equal(t, int64(7), svc.req.UserID)
	require.NotNil(t, svc.req.Status)
	assert.Equal(t, "active", *svc.req.Status)
	assert.Equal(t, uint64(5), svc.req.Limit)
	assert.Equal(t, uint64(10), svc.req.Offset)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, serve(&stubService{}, 0, "/bookings").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, 7, "/bookings?limit=-1").Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(&stubService{err: fmt.Errorf("%w: invalid status", bookings.ErrInvalidInput)}, 7, "/bookings?status=done").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&stubService{err: errors.New("boom")}, 7, "/bookings").Code)
}

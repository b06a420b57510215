package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

type stubService struct {
	id      int64
	userID  int64
	isAdmin bool
	err     error
}

func (s *stubService) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.id, s.userID, s.isAdmin = id, userID, isAdmin
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, UserID: 3, Status: "pending"}, nil
}

func serve(svc *stubService, userID int64, role string, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.Nop()).Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID > 0 {
		req = req.WithContext(middleware.WithIdentity(req.Context(), userID, role))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_PassesAdminFlag(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, 3, domain.RoleUser, "/bookings/5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.id)
	assert.Equal(t, int64(3), svc.userID)
	assert.False(t, svc.isAdmin)

	rec = serve(svc, 1, domain.RoleAdmin, "/bookings/5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.isAdmin)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		userID int64
		path   string
		err    error
		code   int
	}{
		{name: "bad id", userID: 3, path: "/bookings/x", code: http.StatusBadRequest},
		{name: "no user", path: "/bookings/5", code: http.StatusUnauthorized},
		{name: "not found", userID: 3, path: "/bookings/5", err: bookings.ErrBookingNotFound, code: http.StatusNotFound},
		{name: "other owner", userID: 3, path: "/bookings/5", err: bookings.ErrAccessDenied, code: http.StatusForbidden},
		{name: "storage", userID: 3, path: "/bookings/5", err: errors.New("boom"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, tt.userID, domain.RoleUser, tt.path)
			assert.Equal(t, tt.code, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotContains(t, resp.Message, "boom")
		})
	}
}

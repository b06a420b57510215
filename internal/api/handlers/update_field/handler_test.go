package update_field

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

type stubService struct {
	id  int64
	req *models.SaveFieldRequest
	err error
}

func (s *stubService) Update(ctx context.Context, id int64, req *models.SaveFieldRequest) (*models.FieldResponse, error) {
	s.id, s.req = id, req
	if s.err != nil {
		return nil, s.err
	}
	return &models.FieldResponse{ID: id, Name: req.Name, Sport: req.Sport}, nil
}

const validBody = `{"name": "Futsal B", "sport": "Futsal", "availability": []}`

func serve(svc *stubService, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/fields/{fieldId}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPut)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, path, bytes.NewBufferString(body)))
	return rec
}

func TestHandle_Updated(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, "/admin/fields/9", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), svc.id)
	assert.Equal(t, "Futsal", svc.req.Sport)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		err  error
		code int
	}{
		{name: "bad id", path: "/admin/fields/abc", body: validBody, code: http.StatusBadRequest},
		{name: "bad body", path: "/admin/fields/9", body: `{`, code: http.StatusBadRequest},
		{name: "invalid sport", path: "/admin/fields/9", body: `{"name": "A", "sport": "Golf"}`, code: http.StatusBadRequest},
		{name: "not found", path: "/admin/fields/9", body: validBody, err: fields.ErrFieldNotFound, code: http.StatusNotFound},
		{name: "rejected", path: "/admin/fields/9", body: validBody, err: fields.ErrInvalidInput, code: http.StatusBadRequest},
		{name: "storage", path: "/admin/fields/9", body: validBody, err: errors.New("boom"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, tt.path, tt.body)
			assert.Equal(t, tt.code, rec.Code)
			assert.NotContains(t, rec.Body.String(), "boom")
		})
	}
}

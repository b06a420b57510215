package delete_field

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

type stubService struct {
	id  int64
	err error
}

func (s *stubService) Delete(ctx context.Context, id int64) error {
	s.id = id
	return s.err
}

func serve(svc *stubService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/fields/{fieldId}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodDelete)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, "/admin/fields/9")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(9), svc.id)
	assert.Empty(t, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/admin/fields/-1").Code)
	assert.Equal(t, http.StatusNotFound, serve(&stubService{err: fields.ErrFieldNotFound}, "/admin/fields/9").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&stubService{err: errors.New("boom")}, "/admin/fields/9").Code)
}

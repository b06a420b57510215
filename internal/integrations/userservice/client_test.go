package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

func TestClient_GetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/7":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":7,"name":"Budi","email":"budi@example.com","phone":"+62811"}`))
		case "/internal/users/8":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"code":500,"message":"boom"}`))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.Nop())

	user, err := c.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, &User{ID: 7, Name: "Budi", Email: "budi@example.com", Phone: "+62811"}, user)

	_, err = c.GetUser(context.Background(), 8)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = c.GetUser(context.Background(), 9)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "boom")
}

func TestClient_GracefulDegradation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.Nop())

	user, err := c.GetUserWithGracefulDegradation(context.Background(), 7)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrServiceDegraded)
}

func TestClient_GracefulDegradationUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond, logger.Nop())

	_, err := c.GetUserWithGracefulDegradation(context.Background(), 7)
	assert.ErrorIs(t, err, ErrServiceDegraded)
}

package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	tests := []struct {
		name           string
		health         HealthChecker
		expectedStatus int
	}{
		{name: "no checker", expectedStatus: http.StatusOK},
		{name: "store reachable", health: pingFunc(func(context.Context) error { return nil }), expectedStatus: http.StatusOK},
		{name: "store down", health: pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(":0", tc.health, "release")

			w := httptest.NewRecorder()
			s.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestMiddlewareRunsOnRoutes(t *testing.T) {
	called := false
	s := New(":0", nil, "release", func(c *gin.Context) {
		called = true
		c.Next()
	})

	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.True(t, called)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := New("127.0.0.1:0", nil, "release")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.Run(ctx))
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	s := New(":0", nil, "release")
	s.Engine.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

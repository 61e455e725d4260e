package health

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func serve(hc *Checker, path string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/healthz", hc.Liveness)
	router.GET("/readyz", hc.Readiness)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChecker_Liveness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hc := NewChecker(nil, &MockLogger{})

	w := serve(hc, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestChecker_Readiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("no checks", func(t *testing.T) {
		hc := NewChecker(nil, &MockLogger{})

		w := serve(hc, "/readyz")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ready"`)
	})

	t.Run("all healthy", func(t *testing.T) {
		tracing := &MockPinger{}
		tracing.On("Ping", mock.Anything).Return(nil)
		hc := NewChecker(map[string]Pinger{"tracing": tracing}, &MockLogger{})

		w := serve(hc, "/readyz")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tracing":"healthy"`)
		tracing.AssertExpectations(t)
	})

	t.Run("dependency unhealthy", func(t *testing.T) {
		tracing := &MockPinger{}
		tracing.On("Ping", mock.Anything).Return(errors.New("collector down"))
		hc := NewChecker(map[string]Pinger{"tracing": tracing}, &MockLogger{})

		w := serve(hc, "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"not_ready"`)
		assert.Contains(t, w.Body.String(), "collector down")
	})

	t.Run("draining", func(t *testing.T) {
		hc := NewChecker(nil, &MockLogger{})
		hc.Drain()

		w := serve(hc, "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"server":"draining"`)
	})
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewHTTPMetrics("test-svc")
	_ = NewHTTPMetrics("test-svc") // second call must not panic on registration

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("test-svc", "GET", "/ping", "200"))
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	after := testutil.ToFloat64(RequestCounter.WithLabelValues("test-svc", "GET", "/ping", "200"))
	assert.Equal(t, float64(3), after-before)
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "2xx", category(200))
	assert.Equal(t, "3xx", category(302))
	assert.Equal(t, "4xx", category(404))
	assert.Equal(t, "5xx", category(503))
}

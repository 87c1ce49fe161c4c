package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("test")

	m.RecordTransition("start_week", "ok")
	m.RecordTransition("start_week", "ok")
	m.RecordTransition("finish_week", "conflict")
	m.RecordDecision(domain.Allow())
	m.RecordDecision(domain.Deny(domain.ReasonWeekClosed))
	m.RecordPublish(domain.EventWeekOpened, nil)
	m.RecordPublish(domain.EventWeekOpened, errors.New("broker down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transitions.WithLabelValues("start_week", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("finish_week", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("true", "none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("false", "week closed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues(domain.EventWeekOpened, "error")))
}

func TestMetrics_HTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("test")

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/ping", "200")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}

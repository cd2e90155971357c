package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/missions/:id", func(ctx *gin.Context) {
		ctx.Status(http.StatusNotFound)
	})

	for range 3 {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missions/999", nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/missions/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestObserveOperation(t *testing.T) {
	m := New()
	m.ObserveOperation("query", false)
	m.ObserveOperation("mutation", true)
	m.ObserveOperation("DeleteMission", false)
	m.ObserveOperation("", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("query", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("mutation", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("other", "ok")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.operations))

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, strings.Contains(recorder.Body.String(), `missions_graphql_operations_total{outcome="ok",type="query"} 1`))
	assert.False(t, strings.Contains(recorder.Body.String(), "DeleteMission"))
}

func TestOperationSeriesStayBounded(t *testing.T) {
	m := New()
	for i := range 500 {
		m.ObserveOperation(fmt.Sprintf("Operation%d", i), i%2 == 0)
	}
	assert.Equal(t, 2, testutil.CollectAndCount(m.operations))
}

package prom

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsByOpAndOutcome(t *testing.T) {
	m := New()
	m.RecordSuccess("enter_door")
	m.RecordSuccess("enter_door")
	m.RecordConflict("enter_door")
	m.RecordFailure("like")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.handled.WithLabelValues("enter_door", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.handled.WithLabelValues("enter_door", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.handled.WithLabelValues("like", "failure")))
}

func TestMetrics_HandlerExposesCounters(t *testing.T) {
	m := New()
	m.RecordSuccess("open_package")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `doorhop_handler_total{op="open_package",outcome="success"} 1`))
}

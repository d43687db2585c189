package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkMetricsCounts(t *testing.T) {
	m, err := NewWalkMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordMissions("ai_generated")
	m.RecordMissions("error")
	m.RecordMissions("error")
	m.RecordUpload("local", "success")
	m.RecordReconciled(2)
	m.RecordReconciled(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.missionsGenerated.WithLabelValues("ai_generated")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.missionsGenerated.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues("local", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.photosReconciled))
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewWalkMetrics(reg)
	require.NoError(t, err)

	_, err = NewWalkMetrics(reg)
	assert.Error(t, err)
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *WalkMetrics
	assert.NotPanics(t, func() {
		m.RecordMissions("error")
		m.RecordRoute("ok")
		m.RecordGeocode("station")
		m.RecordUpload("s3", "error")
		m.RecordWalkSave("degraded")
		m.RecordWalkList("ok")
		m.RecordReconciled(3)
	})
}

func TestHandlerServesCounters(t *testing.T) {
	m, err := NewWalkMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	m.RecordWalkSave("ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `photowalk_walk_saves_total{status="ok"} 1`)
}

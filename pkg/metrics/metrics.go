// Package metrics holds the prometheus counters of the walk backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WalkMetrics is safe to use as a nil pointer; every recorder is then a
// no-op, which keeps service tests free of registry setup.
type WalkMetrics struct {
	registry *prometheus.Registry

	missionsGenerated *prometheus.CounterVec
	routeRequests     *prometheus.CounterVec
	geocodeLookups    *prometheus.CounterVec
	uploads           *prometheus.CounterVec
	walkWrites        *prometheus.CounterVec
	walkReads         *prometheus.CounterVec
	photosReconciled  prometheus.Counter
}

func NewWalkMetrics(registry *prometheus.Registry) (*WalkMetrics, error) {
	m := &WalkMetrics{registry: registry}
	m.initMetrics()

	collectors := []prometheus.Collector{
		m.missionsGenerated,
		m.routeRequests,
		m.geocodeLookups,
		m.uploads,
		m.walkWrites,
		m.walkReads,
		m.photosReconciled,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *WalkMetrics) initMetrics() {
	m.missionsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photowalk_missions_generated_total",
			Help: "Mission batches handed out, by source",
		},
		[]string{"reason"}, // ai_generated, no_api_key, error
	)

	m.routeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photowalk_route_requests_total",
			Help: "Walking route requests, by outcome",
		},
		[]string{"status"},
	)

	m.geocodeLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photowalk_geocode_lookups_total",
			Help: "Address resolutions, by where the answer came from",
		},
		[]string{"source"}, // station, cache, provider, miss
	)

	m.uploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photowalk_uploads_total",
			Help: "Photo uploads, by store and outcome",
		},
		[]string{"store", "status"},
	)

	m.walkWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photowalk_walk_saves_total",
			Help: "Walk saves; degraded means a local id was returned",
		},
		[]string{"status"},
	)

	m.walkReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photowalk_walk_lists_total",
			Help: "Walk history reads, by outcome",
		},
		[]string{"status"},
	)

	m.photosReconciled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "photowalk_photos_reconciled_total",
			Help: "Photos whose image url was backfilled from the upload table",
		},
	)
}

func (m *WalkMetrics) RecordMissions(reason string) {
	if m == nil {
		return
	}
	m.missionsGenerated.WithLabelValues(reason).Inc()
}

func (m *WalkMetrics) RecordRoute(status string) {
	if m == nil {
		return
	}
	m.routeRequests.WithLabelValues(status).Inc()
}

func (m *WalkMetrics) RecordGeocode(source string) {
	if m == nil {
		return
	}
	m.geocodeLookups.WithLabelValues(source).Inc()
}

func (m *WalkMetrics) RecordUpload(store, status string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(store, status).Inc()
}

func (m *WalkMetrics) RecordWalkSave(status string) {
	if m == nil {
		return
	}
	m.walkWrites.WithLabelValues(status).Inc()
}

func (m *WalkMetrics) RecordWalkList(status string) {
	if m == nil {
		return
	}
	m.walkReads.WithLabelValues(status).Inc()
}

func (m *WalkMetrics) RecordReconciled(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.photosReconciled.Add(float64(n))
}

// Handler exposes the registry in the prometheus text format.
func (m *WalkMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

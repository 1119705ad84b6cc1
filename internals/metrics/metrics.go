// Package metrics berisi metric Prometheus untuk modul progress.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "jdp"
	subsystem = "progress"
)

// Manager kumpulan collector yang dipakai service & middleware.
type Manager struct {
	registry *prometheus.Registry

	recomputeTotal    *prometheus.CounterVec
	recomputeDuration prometheus.Histogram
	rebuildFailures   prometheus.Counter
	rebuildLastUnix   prometheus.Gauge
	progressRecords   *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager = NewManager(prometheus.NewRegistry())

// NewManager daftarkan semua collector ke registry yang diberikan.
func NewManager(reg *prometheus.Registry) *Manager {
	auto := promauto.With(reg)
	m := &Manager{registry: reg}

	m.recomputeTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "summary_recompute_total",
		Help:      "Jumlah recompute summary per pemain, per hasil",
	}, []string{"result"})

	m.recomputeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "summary_recompute_duration_seconds",
		Help:      "Durasi recompute summary satu pemain",
		Buckets:   prometheus.DefBuckets,
	})

	m.rebuildFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "summary_rebuild_failures_total",
		Help:      "Jumlah pemain yang gagal di-rebuild",
	})

	m.rebuildLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "summary_rebuild_last_unix",
		Help:      "Waktu selesai rebuildAll terakhir (unix)",
	})

	m.progressRecords = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "records_total",
		Help:      "Mutasi progress record per aksi (created, skipped, approved, rejected)",
	}, []string{"action"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Jumlah request HTTP per route, method, status",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Durasi request HTTP",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Manager) RecordRecompute(ok bool, d time.Duration) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.recomputeTotal.WithLabelValues(result).Inc()
	m.recomputeDuration.Observe(d.Seconds())
}

func (m *Manager) RecordRebuild(failed int, finished time.Time) {
	m.rebuildFailures.Add(float64(failed))
	m.rebuildLastUnix.Set(float64(finished.Unix()))
}

func (m *Manager) RecordProgress(action string, n int) {
	if n <= 0 {
		return
	}
	m.progressRecords.WithLabelValues(action).Add(float64(n))
}

// ProgressCounter counter records_total untuk satu aksi.
func (m *Manager) ProgressCounter(action string) prometheus.Counter {
	return m.progressRecords.WithLabelValues(action)
}

func (m *Manager) RecordHTTP(route, method, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

func (m *Manager) Registry() *prometheus.Registry { return m.registry }

func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

/* ===== shortcut ke manager global ===== */

func Default() *Manager { return globalManager }

func RecordRecompute(ok bool, d time.Duration)      { globalManager.RecordRecompute(ok, d) }
func RecordRebuild(failed int, finished time.Time) { globalManager.RecordRebuild(failed, finished) }
func RecordProgress(action string, n int)          { globalManager.RecordProgress(action, n) }
func RecordHTTP(route, method, status string, d time.Duration) {
	globalManager.RecordHTTP(route, method, status, d)
}
func Handler() http.Handler { return globalManager.Handler() }

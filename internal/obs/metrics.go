package obs

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
)

// Metrics tracks application counters with atomics.
type Metrics struct {
	requests       atomic.Int64
	cacheHits      atomic.Int64
	upstreamErrors atomic.Int64
	fallbacks      atomic.Int64
	logger         *zap.Logger
}

// NewMetrics creates a Metrics instance.
func NewMetrics(logger *zap.Logger) *Metrics {
	return &Metrics{logger: logger}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requests.Add(1)
}

// IncCacheHits increments the cache hits counter.
func (m *Metrics) IncCacheHits() {
	m.cacheHits.Add(1)
}

// IncUpstreamErrors increments the upstream error counter.
func (m *Metrics) IncUpstreamErrors() {
	m.upstreamErrors.Add(1)
}

// IncFallbacks counts responses served from fixture data.
func (m *Metrics) IncFallbacks() {
	m.fallbacks.Add(1)
}

// Snapshot returns current metric values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:       m.requests.Load(),
		CacheHits:      m.cacheHits.Load(),
		UpstreamErrors: m.upstreamErrors.Load(),
		Fallbacks:      m.fallbacks.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of the counters.
type MetricsSnapshot struct {
	Requests       int64
	CacheHits      int64
	UpstreamErrors int64
	Fallbacks      int64
}

// HealthHandler returns a handler for /healthz requests.
func HealthHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health response", zap.Error(err))
		}
	}
}

// MetricsHandler returns a handler serving the counters in Prometheus
// text format.
func (m *Metrics) MetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := m.Snapshot()

		counters := []struct {
			name string
			help string
			val  int64
		}{
			{"requests_total", "Total number of requests", snapshot.Requests},
			{"cache_hits_total", "Total number of cache hits", snapshot.CacheHits},
			{"upstream_errors_total", "Total number of upstream inventory errors", snapshot.UpstreamErrors},
			{"fallback_responses_total", "Total number of responses served from fixture data", snapshot.Fallbacks},
		}

		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)
		for _, c := range counters {
			if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", c.name, c.help, c.name, c.name, c.val); err != nil {
				m.logger.Error("failed to write metrics", zap.Error(err))
				return
			}
		}
	}
}

// Package metrics provides Prometheus metrics for the recommendation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	// Business metrics
	gamesScored     prometheus.Counter
	recommendations prometheus.Counter

	// Collaborator metrics
	providerRequests *prometheus.CounterVec
	providerRetries  prometheus.Counter
	storeQueries     *prometheus.CounterVec
	syncRuns         *prometheus.CounterVec
	gamesSynced      prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithRegistry sets the registry collectors are registered on.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "hoopsight",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		})
		m.registry.MustRegister(c)
		return c
	}
	vecFactory := func(name, help string, labels ...string) *prometheus.CounterVec {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		}, labels)
		m.registry.MustRegister(c)
		return c
	}

	m.gamesScored = factory("games_scored_total", "Games scored during ranking passes.")
	m.recommendations = factory("recommendations_total", "Recommendation requests served.")
	m.providerRequests = vecFactory("provider_requests_total", "Upstream provider requests.", "endpoint", "status")
	m.providerRetries = factory("provider_retries_total", "Upstream provider request retries.")
	m.storeQueries = vecFactory("store_queries_total", "Repository queries.", "query")
	m.syncRuns = vecFactory("sync_runs_total", "Sync runs by outcome.", "outcome")
	m.gamesSynced = factory("games_synced_total", "Games written to the local store by sync.")

	m.httpRequests = vecFactory("http_requests_total", "HTTP requests.", "endpoint", "method", "status")
	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"endpoint", "method", "status"})
	m.registry.MustRegister(m.httpRequestDuration)

	return m
}

// Registry returns the registry backing this manager, for promhttp.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Global manager. The service is a single process; one registry is enough.
var globalManager = NewManager() //nolint:gochecknoglobals

// GetRegistry returns the global metrics registry.
func GetRegistry() *prometheus.Registry {
	return globalManager.Registry()
}

// RecordGamesScored counts games scored in a ranking pass.
func RecordGamesScored(n int) {
	globalManager.gamesScored.Add(float64(n))
}

// RecordRecommendation counts a served recommendation request.
func RecordRecommendation() {
	globalManager.recommendations.Inc()
}

// RecordProviderRequest counts one upstream request by endpoint and status.
func RecordProviderRequest(endpoint, status string) {
	globalManager.providerRequests.WithLabelValues(endpoint, status).Inc()
}

// RecordProviderRetry counts a retried upstream request.
func RecordProviderRetry() {
	globalManager.providerRetries.Inc()
}

// RecordStoreQuery counts a repository query by name.
func RecordStoreQuery(query string) {
	globalManager.storeQueries.WithLabelValues(query).Inc()
}

// RecordSyncRun counts a sync run by outcome ("ok" or "error").
func RecordSyncRun(outcome string) {
	globalManager.syncRuns.WithLabelValues(outcome).Inc()
}

// RecordGamesSynced counts games written by a sync run.
func RecordGamesSynced(n int) {
	globalManager.gamesSynced.Add(float64(n))
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

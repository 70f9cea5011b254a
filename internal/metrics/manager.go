package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MergeResultSaved   = "saved"
	MergeResultInvalid = "invalid"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterSetMerges          *prometheus.CounterVec
	CounterCorruptedLogs      prometheus.Counter
	CounterStreakTransitions  prometheus.Counter
	CounterRecommendations    prometheus.Counter
	CounterCacheHits          prometheus.Counter
	CounterCacheMisses        prometheus.Counter
	CounterRateLimited        prometheus.Counter
	CounterLockTimeouts       prometheus.Counter
	CounterHandleRequestPanic prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("fitness", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitness", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "route", "status"})
	counterSetMerges := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "set_merges",
		Help:      "The total number of exercise set merges by result",
	}, []string{"result"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})

	histReqDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025,
				0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of requests in seconds",
		},
	)

	return &Manager{
		CounterRequests:           counterRequests,
		CounterSetMerges:          counterSetMerges,
		CounterCorruptedLogs:      counter("corrupted_logs", "Stored exercise logs found with mismatched set arrays"),
		CounterStreakTransitions:  counter("streak_transitions", "The total number of applied workout completions"),
		CounterRecommendations:    counter("recommendations", "The total number of computed recommendation requests"),
		CounterCacheHits:          counter("recommendation_cache_hits", "Recommendation cache hits"),
		CounterCacheMisses:        counter("recommendation_cache_misses", "Recommendation cache misses"),
		CounterRateLimited:        counter("rate_limited_requests", "Requests rejected by the rate limiter"),
		CounterLockTimeouts:       counter("lock_timeouts", "Writes rejected because the per-day lock was busy"),
		CounterHandleRequestPanic: counter("handle_request_panic", "The total number of serve request panics"),
		GaugeRequests:             gaugeRequests,
		HistRequestDuration:       histReqDuration,
	}
}

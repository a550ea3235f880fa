package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "guardian"

var (
	ReadingsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "readings_generated_total",
		Help:      "Equipment readings emitted by the live feed.",
	})
	DBWriteSuccess = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "db_write_success_total",
		Help:      "Readings written to TimescaleDB.",
	})
	DBWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "db_write_failures_total",
		Help:      "Readings dropped after the batch insert retry failed.",
	})
	ChannelDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "channel_drops_total",
		Help:      "Readings dropped because a pipeline channel was full.",
	}, []string{"channel"})
	AlertsRaised = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_raised_total",
		Help:      "Alerts stored after deduplication, by alert type.",
	}, []string{"type"})
	Inspections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inspections_total",
		Help:      "Finished inspections by outcome.",
	}, []string{"outcome"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests processed by route and status.",
	}, []string{"route", "status"})
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request durations by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// Channel labels used by ChannelDrops.
const (
	ChannelDB    = "db"
	ChannelState = "state"
	ChannelAlert = "alert"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler records request count and latency under the route template.
func WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		httpRequests.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

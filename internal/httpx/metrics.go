package httpx

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the upstream request collectors
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medi_plans",
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the plan lookup API by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medi_plans",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of requests sent to the plan lookup API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(m.requests, m.duration)

	return m
}

func (m *Metrics) observe(route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.requests.WithLabelValues(route, label).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

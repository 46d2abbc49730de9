package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "option_pricer"

// Registry holds every collector this process exports.
var Registry = prometheus.NewRegistry()

var (
	pricings = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pricings_total",
		Help:      "Option pricings by method, kind and outcome.",
	}, []string{"method", "kind", "outcome"})

	pricingDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pricing_duration_seconds",
		Help:      "Wall time of a single pricing.",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
	}, []string{"method"})

	simulatedPaths = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulated_paths_total",
		Help:      "Asset paths simulated across all Monte Carlo runs.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "API requests by route and status code.",
	}, []string{"route", "status"})
)

func init() {
	Registry.MustRegister(
		pricings,
		pricingDuration,
		simulatedPaths,
		httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObservePricing records one pricing attempt.
func ObservePricing(method, kind string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	pricings.WithLabelValues(method, kind, outcome).Inc()
	pricingDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func AddSimulatedPaths(n int) {
	if n > 0 {
		simulatedPaths.Add(float64(n))
	}
}

func ObserveHTTP(route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Handler serves Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

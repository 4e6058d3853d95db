// SPDX-License-Identifier: MIT

package round

import (
	"time"

	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var _ Aggregate[int, int] = (*metricsMiddleware[int, int])(nil)

type metricsMiddleware[S, R any] struct {
	counter metrics.Counter
	latency metrics.Histogram
	agg     Aggregate[S, R]
}

// Metrics wraps agg so every phase call is counted and timed under the
// "method" label: init, transition, merge, final. The transition count of a
// round is the number of rows folded.
func Metrics[S, R any](counter metrics.Counter, latency metrics.Histogram, agg Aggregate[S, R]) Aggregate[S, R] {
	return &metricsMiddleware[S, R]{
		counter: counter,
		latency: latency,
		agg:     agg,
	}
}

func (mm *metricsMiddleware[S, R]) Init() (S, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "init").Add(1)
		mm.latency.With("method", "init").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.agg.Init()
}

func (mm *metricsMiddleware[S, R]) Transition(s S, r R) (S, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "transition").Add(1)
		mm.latency.With("method", "transition").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.agg.Transition(s, r)
}

func (mm *metricsMiddleware[S, R]) Merge(left, right S) (S, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "merge").Add(1)
		mm.latency.With("method", "merge").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.agg.Merge(left, right)
}

func (mm *metricsMiddleware[S, R]) Final(s S) (S, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "final").Add(1)
		mm.latency.With("method", "final").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.agg.Final(s)
}

// MakeMetrics returns a Prometheus-backed counter and latency summary for the
// given namespace and subsystem. Both are registered with the default
// registry, so call it once per namespace and subsystem.
func MakeMetrics(namespace, subsystem string) (metrics.Counter, metrics.Histogram) {
	counter := kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_count",
		Help:      "Number of aggregate phase calls.",
	}, []string{"method"})
	latency := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_latency_seconds",
		Help:      "Duration of aggregate phase calls in seconds.",
	}, []string{"method"})

	return counter, latency
}

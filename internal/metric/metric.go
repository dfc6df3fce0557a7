// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package metric // import "github.com/citizencage/drupal-8-twig-helpers/internal/metric"

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "projecthelper"

// Prometheus Metrics.
var (
	TruncateCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "truncate_calls_total",
			Help:      "Number of truncated texts by result",
		},
		[]string{"result"},
	)

	FuncCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "template_func_calls_total",
			Help:      "Number of template function calls by function and status",
		},
		[]string{"func", "status"},
	)

	RenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Template render duration",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"template", "status"},
	)

	termCacheGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "term_cache_requests",
			Help:      "Number of term cache requests by result",
		},
		[]string{"result"},
	)
)

// Truncation results.
const (
	Unchanged = "unchanged"
	Truncated = "truncated"
)

func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveRender records duration of rendering the template since start.
func ObserveRender(name string, start time.Time, err error) {
	RenderDuration.WithLabelValues(name, Status(err)).
		Observe(time.Since(start).Seconds())
}

// SetTermCacheStats exports hit and miss counters of the term cache.
func SetTermCacheStats(hit, miss uint64) {
	termCacheGauge.WithLabelValues("hit").Set(float64(hit))
	termCacheGauge.WithLabelValues("miss").Set(float64(miss))
}

// NewRegistry returns a registry with all metrics of the package and
// additional collectors.
func NewRegistry(collectors ...prometheus.Collector) (*prometheus.Registry,
	error,
) {
	r := prometheus.NewRegistry()
	all := append([]prometheus.Collector{
		TruncateCalls, FuncCalls, RenderDuration, termCacheGauge,
	}, collectors...)

	for _, c := range all {
		if err := r.Register(c); err != nil {
			return nil, fmt.Errorf("metric: register collector: %w", err)
		}
	}
	return r, nil
}

// WriteTextfile writes metrics of the registry to filename in the format of
// node exporter textfile collector.
func WriteTextfile(filename string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(filename, g); err != nil {
		return fmt.Errorf("metric: write %q: %w", filename, err)
	}
	return nil
}

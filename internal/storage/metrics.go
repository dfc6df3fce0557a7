// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package storage // import "github.com/citizencage/drupal-8-twig-helpers/internal/storage"

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

var (
	poolAcquireCountGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "projecthelper",
		Name:      "pgx_acquire_count",
		Help:      "The cumulative count of successful acquires from the pool",
	})

	poolAcquireDurationGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "projecthelper",
		Name:      "pgx_acquire_duration",
		Help:      "The total duration of all successful acquires from the pool",
	})

	poolNewConnsCountGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "projecthelper",
		Name:      "pgx_new_conns_count",
		Help:      "The cumulative count of new connections opened",
	})

	poolTotalConnsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "projecthelper",
		Name:      "pgx_total_conns",
		Help:      "The total number of resources currently in the pool",
	})

	termsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "projecthelper",
		Name:      "terms",
		Help:      "Number of terms by vocabulary",
	}, []string{"vocabulary"})

	nodesGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "projecthelper",
		Name:      "published_nodes",
		Help:      "Number of published nodes by type",
	}, []string{"type"})
)

// Collectors returns storage metrics for registration.
func (s *Storage) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		poolAcquireCountGauge,
		poolAcquireDurationGauge,
		poolNewConnsCountGauge,
		poolTotalConnsGauge,
		termsGauge,
		nodesGauge,
	}
}

// Metrics updates storage metrics, with fromDB also counts of terms and nodes.
func (s *Storage) Metrics(ctx context.Context, fromDB bool) error {
	if fromDB {
		if err := s.metricsFromDB(ctx); err != nil {
			return err
		}
	}

	stat := s.db.Stat()
	poolAcquireCountGauge.Set(float64(stat.AcquireCount()))
	poolAcquireDurationGauge.Set(stat.AcquireDuration().Seconds())
	poolNewConnsCountGauge.Set(float64(stat.NewConnsCount()))
	poolTotalConnsGauge.Set(float64(stat.TotalConns()))
	return nil
}

func (s *Storage) metricsFromDB(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := s.CountTerms(ctx)
		if err != nil {
			return err
		}
		for vocabulary, n := range counts {
			termsGauge.WithLabelValues(vocabulary).Set(float64(n))
		}
		return nil
	})

	g.Go(func() error {
		counts, err := s.CountNodes(ctx)
		if err != nil {
			return err
		}
		for nodeType, n := range counts {
			nodesGauge.WithLabelValues(nodeType).Set(float64(n))
		}
		return nil
	})
	return g.Wait() //nolint:wrapcheck // already wrapped
}

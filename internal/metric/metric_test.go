// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package metric

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, "success", Status(nil))
	assert.Equal(t, "error", Status(errors.New("x")))
}

func TestWriteTextfile(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "test_extra_total",
		Help:      "Extra collector",
	})
	r, err := NewRegistry(extra)
	require.NoError(t, err)

	extra.Inc()
	TruncateCalls.WithLabelValues(Truncated).Inc()
	FuncCalls.WithLabelValues("truncateText", Status(nil)).Inc()
	ObserveRender("teaser", time.Now(), nil)
	SetTermCacheStats(3, 1)

	filename := filepath.Join(t.TempDir(), "projecthelper.prom")
	require.NoError(t, WriteTextfile(filename, r))

	b, err := os.ReadFile(filename)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `projecthelper_truncate_calls_total{result="truncated"}`)
	assert.Contains(t, s,
		`projecthelper_template_func_calls_total{func="truncateText",status="success"}`)
	assert.Contains(t, s, `projecthelper_render_duration_seconds_count{status="success",template="teaser"} 1`)
	assert.Contains(t, s, `projecthelper_term_cache_requests{result="hit"} 3`)
	assert.Contains(t, s, "projecthelper_test_extra_total 1")

	_, err = NewRegistry(extra, extra)
	require.Error(t, err)
}

// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package storage // import "github.com/citizencage/drupal-8-twig-helpers/internal/storage"

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
)

type ctxTraceStat struct{}

var traceStatKey ctxTraceStat = struct{}{}

// TraceStat counts queries executed with a context and their total time.
type TraceStat struct {
	queries atomic.Int64
	elapsed atomic.Int64
}

func (self *TraceStat) incQuery(d time.Duration) {
	self.queries.Add(1)
	self.elapsed.Add(d.Nanoseconds())
}

func (self *TraceStat) Queries() int64 { return self.queries.Load() }

func (self *TraceStat) Elapsed() time.Duration {
	return time.Duration(self.elapsed.Load())
}

// WithTraceStat returns a context which collects statistics of every query
// executed with it.
func WithTraceStat(ctx context.Context) (context.Context, *TraceStat) {
	t := new(TraceStat)
	return context.WithValue(ctx, traceStatKey, t), t
}

func TraceStatFrom(ctx context.Context) *TraceStat {
	if s, ok := ctx.Value(traceStatKey).(*TraceStat); ok {
		return s
	}
	return nil
}

type ctxTraceQueryData struct{}

var traceQueryDataKey ctxTraceQueryData = struct{}{}

type queryTracer struct{}

var _ pgx.QueryTracer = (*queryTracer)(nil)

func (self queryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn,
	data pgx.TraceQueryStartData,
) context.Context {
	if TraceStatFrom(ctx) == nil {
		return ctx
	}
	return context.WithValue(ctx, traceQueryDataKey, time.Now())
}

func (self queryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn,
	data pgx.TraceQueryEndData,
) {
	t := TraceStatFrom(ctx)
	if t == nil {
		return
	}

	if startTime, ok := ctx.Value(traceQueryDataKey).(time.Time); ok {
		t.incQuery(time.Since(startTime))
	}
}

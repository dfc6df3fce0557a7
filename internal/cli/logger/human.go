// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package logger // import "github.com/citizencage/drupal-8-twig-helpers/internal/cli/logger"

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

const humanTimeLayout = "2006/01/02 15:04:05"

var bufPool = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 1024)) },
}

// NewHumanTextHandler returns a handler, which writes records like
//
//	2024/05/01 10:00:00 INFO Render template name=teaser
//
// The level and message go first, attributes are formatted by
// slog.TextHandler.
func NewHumanTextHandler(w io.Writer, opts *slog.HandlerOptions,
	logTime bool,
) *HumanTextHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	self := &HumanTextHandler{
		logTime: logTime,
		w:       w,
		opts:    *opts,
		mu:      new(sync.Mutex),
	}
	return self.init()
}

type HumanTextHandler struct {
	logTime bool
	w       io.Writer

	// out is shared with handlers derived by WithAttrs and WithGroup, like mu.
	out  *swapWriter
	h    slog.Handler
	opts slog.HandlerOptions

	mu *sync.Mutex
}

var _ slog.Handler = (*HumanTextHandler)(nil)

func (self *HumanTextHandler) init() *HumanTextHandler {
	self.out = new(swapWriter)
	opts := self.opts
	opts.ReplaceAttr = self.replace
	self.h = slog.NewTextHandler(self.out, &opts)
	return self
}

// swapWriter redirects output of the inner text handler into the buffer of
// currently handled record.
type swapWriter struct{ b *bytes.Buffer }

func (self *swapWriter) Write(p []byte) (int, error) {
	return self.b.Write(p) //nolint:wrapcheck // bytes.Buffer
}

func (self *HumanTextHandler) replace(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 {
		switch a.Key {
		case slog.TimeKey, slog.LevelKey, slog.MessageKey:
			return slog.Attr{}
		}
	}
	if self.opts.ReplaceAttr != nil {
		return self.opts.ReplaceAttr(groups, a)
	}
	return a
}

func (self *HumanTextHandler) Enabled(ctx context.Context, level slog.Level,
) bool {
	return self.h.Enabled(ctx, level)
}

func (self *HumanTextHandler) Handle(ctx context.Context, r slog.Record) error {
	b := bufPool.Get().(*bytes.Buffer)
	defer putBuffer(b)

	self.mu.Lock()
	defer self.mu.Unlock()

	if self.logTime && !r.Time.IsZero() {
		b.WriteString(r.Time.Format(humanTimeLayout))
		b.WriteByte(' ')
	}
	b.WriteString(r.Level.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteByte(' ')

	self.out.b = b
	err := self.h.Handle(ctx, r)
	self.out.b = nil
	if err != nil {
		return fmt.Errorf("logger: failed slog handler: %w", err)
	}

	// Discard trailing '\n', added by slog.TextHandler, and trailing ' ' after
	// the message.
	b.Truncate(len(bytes.TrimRight(b.Bytes(), " \n")))
	b.WriteByte('\n')
	if _, err := b.WriteTo(self.w); err != nil {
		return fmt.Errorf("logger: failed write formatted entry: %w", err)
	}
	return nil
}

func putBuffer(b *bytes.Buffer) {
	// To reduce peak allocation, return only smaller buffers to the pool.
	const maxBufferSize = 16 << 10
	if b.Cap() <= maxBufferSize {
		b.Reset()
		bufPool.Put(b)
	}
}

func (self *HumanTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h := *self
	h.h = self.h.WithAttrs(attrs)
	return &h
}

func (self *HumanTextHandler) WithGroup(name string) slog.Handler {
	h := *self
	h.h = self.h.WithGroup(name)
	return &h
}

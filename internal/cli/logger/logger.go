// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package logger // import "github.com/citizencage/drupal-8-twig-helpers/internal/cli/logger"

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/citizencage/drupal-8-twig-helpers/internal/config"
)

// InitializeDefaultLogger configures default slog logger from config.Opts.
// Returned closer is nil, unless the log goes to a file.
func InitializeDefaultLogger() (io.Closer, error) {
	opts := config.Opts
	w, closer, err := parseLogFile(opts.LogFile())
	if err != nil {
		return nil, err
	}

	h := parseFormat(w, opts.LogFormat(), opts.LogLevel(), opts.LogDateTime())
	slog.SetDefault(slog.New(h))
	return closer, nil
}

func parseLogFile(logFile string) (io.Writer, io.Closer, error) {
	switch logFile {
	case "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}

	f, err := NewLogFile(logFile)
	if err != nil {
		return nil, nil, fmt.Errorf(
			"unable to open log file %q: %w", logFile, err)
	}
	return f, f, nil
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func hideTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.Attr{}
	}
	return a
}

func parseFormat(w io.Writer, format, level string, logTime bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	switch format {
	case "human":
		return NewHumanTextHandler(w, opts, logTime)
	case "json":
		if !logTime {
			opts.ReplaceAttr = hideTime
		}
		return slog.NewJSONHandler(w, opts)
	}

	if !logTime {
		opts.ReplaceAttr = hideTime
	}
	return slog.NewTextHandler(w, opts)
}

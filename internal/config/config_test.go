// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package config // import "github.com/citizencage/drupal-8-twig-helpers/internal/config"

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseEnvironmentVariables(t *testing.T) *Options {
	t.Helper()
	parser := NewParser()
	opts, err := parser.ParseEnvironmentVariables()
	require.NoError(t, err)
	require.NotNil(t, opts)
	return opts
}

func TestDefaults(t *testing.T) {
	os.Clearenv()
	opts := parseEnvironmentVariables(t)
	defaults := NewOptions()

	assert.Equal(t, defaults.env.LogFile, opts.LogFile())
	assert.Equal(t, "text", opts.LogFormat())
	assert.Equal(t, "info", opts.LogLevel())
	assert.False(t, opts.LogDateTime())
	assert.True(t, opts.IsDefaultDatabaseURL())
	assert.Equal(t, 4, opts.DatabaseMaxConns())
	assert.Equal(t, 0, opts.DatabaseMinConns())
	assert.Equal(t, time.Hour, opts.DatabaseConnectionLifetime())
	assert.False(t, opts.RunMigrations())
	assert.Empty(t, opts.SiteDataFile())
	assert.Equal(t, 100, opts.TruncateLength())
	assert.Equal(t, "...", opts.TruncateSuffix())
	assert.Equal(t, "https://www.youtube.com/embed/", opts.YouTubeEmbedURL().String())
	assert.Equal(t, "https://player.vimeo.com/video/", opts.VimeoPlayerURL().String())
	assert.Equal(t, 20, opts.PosterIDLength())
	assert.Equal(t, "UTC", opts.Timezone())
	assert.Equal(t, "January 2006", opts.MonthYearLabelLayout())
	assert.Equal(t, "2006-01", opts.MonthYearValueLayout())
	assert.Equal(t, "/taxonomy/term/", opts.TermAliasPrefix())
	assert.True(t, opts.TermCache())
	assert.Empty(t, opts.MetricsTextfile())
}

func TestLogFileWithEmptyValue(t *testing.T) {
	os.Clearenv()
	t.Setenv("LOG_FILE", "")
	opts := parseEnvironmentVariables(t)
	assert.Equal(t, NewOptions().env.LogFile, opts.env.LogFile)
}

func TestCustomValues(t *testing.T) {
	os.Clearenv()
	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_DATE_TIME", "true")
	t.Setenv("DATABASE_URL", "postgres://site:secret@db/site")
	t.Setenv("DATABASE_MAX_CONNS", "10")
	t.Setenv("DATABASE_MIN_CONNS", "2")
	t.Setenv("DATABASE_CONNECTION_LIFETIME", "5")
	t.Setenv("RUN_MIGRATIONS", "1")
	t.Setenv("TRUNCATE_LENGTH", "250")
	t.Setenv("TRUNCATE_SUFFIX", "…")
	t.Setenv("YOUTUBE_EMBED_URL", "https://www.youtube-nocookie.com/embed")
	t.Setenv("POSTER_ID_LENGTH", "12")
	t.Setenv("TIMEZONE", "America/Chicago")
	t.Setenv("TERM_ALIAS_PREFIX", "/category/")
	t.Setenv("TERM_CACHE", "false")

	opts := parseEnvironmentVariables(t)
	assert.Equal(t, "warning", opts.LogLevel())
	assert.Equal(t, "json", opts.LogFormat())
	assert.True(t, opts.LogDateTime())
	assert.Equal(t, "postgres://site:secret@db/site", opts.DatabaseURL())
	assert.False(t, opts.IsDefaultDatabaseURL())
	assert.Equal(t, 10, opts.DatabaseMaxConns())
	assert.Equal(t, 2, opts.DatabaseMinConns())
	assert.Equal(t, 5*time.Minute, opts.DatabaseConnectionLifetime())
	assert.True(t, opts.RunMigrations())
	assert.Equal(t, 250, opts.TruncateLength())
	assert.Equal(t, "…", opts.TruncateSuffix())
	assert.Equal(t, "https://www.youtube-nocookie.com/embed/",
		opts.YouTubeEmbedURL().String())
	assert.Equal(t, 12, opts.PosterIDLength())
	assert.Equal(t, "America/Chicago", opts.Timezone())
	assert.Equal(t, "/category/", opts.TermAliasPrefix())
	assert.False(t, opts.TermCache())
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		err   string
	}{
		{"log level", "LOG_LEVEL", "invalid", "oneof"},
		{"log format", "LOG_FORMAT", "invalid", "failed on the 'oneof' tag"},
		{"log date time", "LOG_DATE_TIME", "invalid", "invalid syntax"},
		{"max conns", "DATABASE_MAX_CONNS", "0", "DATABASE_MAX_CONNS"},
		{"min conns", "DATABASE_MIN_CONNS", "10", "DATABASE_MIN_CONNS"},
		{"timezone", "TIMEZONE", "Mars/Olympus_Mons", "TIMEZONE"},
		{"youtube url", "YOUTUBE_EMBED_URL", "not a url", "YOUTUBE_EMBED_URL"},
		{"poster id", "POSTER_ID_LENGTH", "65", "POSTER_ID_LENGTH"},
		{"alias prefix", "TERM_ALIAS_PREFIX", "taxonomy/term/", "TERM_ALIAS_PREFIX"},
		{"site data", "SITE_DATA_FILE", "/nonexistent/site.yaml", "SITE_DATA_FILE"},
		{"layouts", "MONTH_YEAR_LABEL_LAYOUT", "2006-01", "are the same"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			t.Setenv(tt.key, tt.value)
			_, err := NewParser().ParseEnvironmentVariables()
			t.Log(err)
			require.ErrorContains(t, err, tt.err)
		})
	}
}

func TestDatabaseURLFile(t *testing.T) {
	os.Clearenv()
	filename := filepath.Join(t.TempDir(), "dsn")
	require.NoError(t, os.WriteFile(filename,
		[]byte("postgres://from-file/site\n"), 0o600))
	t.Setenv("DATABASE_URL_FILE", filename)

	opts := parseEnvironmentVariables(t)
	assert.Equal(t, "postgres://from-file/site", opts.DatabaseURL())
}

func TestParseEnvFile(t *testing.T) {
	os.Clearenv()
	filename := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(filename, []byte(`
LOG_LEVEL=debug
TRUNCATE_LENGTH=42
TIMEZONE=Europe/Berlin
`), 0o600))
	t.Setenv("TRUNCATE_LENGTH", "50")

	opts, err := NewParser().ParseEnvFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "debug", opts.LogLevel())
	assert.Equal(t, 50, opts.TruncateLength(), "env overrides file")
	assert.Equal(t, "Europe/Berlin", opts.Timezone())

	_, err = NewParser().ParseEnvFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	os.Clearenv()
	t.Setenv("TRUNCATE_LENGTH", "7")
	require.NoError(t, Load(""))
	require.NotNil(t, Opts)
	assert.Equal(t, 7, Opts.TruncateLength())
}

func TestSortedOptions(t *testing.T) {
	os.Clearenv()
	t.Setenv("DATABASE_URL", "postgres://site:secret@db/site")
	opts := parseEnvironmentVariables(t)

	sorted := opts.SortedOptions(true)
	require.NotEmpty(t, sorted)
	for i := 1; i < len(sorted); i++ {
		assert.Less(t, sorted[i-1].Key, sorted[i].Key)
	}

	values := make(map[string]any, len(sorted))
	for _, o := range sorted {
		values[o.Key] = o.Value
	}
	assert.Equal(t, "<secret>", values["DATABASE_URL"])
	assert.Equal(t, 100, values["TRUNCATE_LENGTH"])

	assert.Contains(t, opts.String(), "DATABASE_URL=postgres://site:secret@db/site\n")
	assert.Contains(t, opts.String(), "TIMEZONE=UTC\n")
}

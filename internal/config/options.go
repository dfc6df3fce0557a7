// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package config // import "github.com/citizencage/drupal-8-twig-helpers/internal/config"

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"
)

const (
	defaultDatabaseURL = "user=postgres password=postgres dbname=drupal sslmode=disable"

	defaultYouTubeURL = "https://www.youtube.com/embed/"
	defaultVimeoURL   = "https://player.vimeo.com/video/"
)

// Option contains a key to value map of a single option. It may be used to
// output debug strings.
type Option struct {
	Key   string
	Value any
}

// Options contains configuration options.
type Options struct {
	env EnvOptions

	youtubeURL *url.URL
	vimeoURL   *url.URL
}

type EnvOptions struct {
	LogFile                    string  `env:"LOG_FILE" validate:"required"`
	LogDateTime                bool    `env:"LOG_DATE_TIME"`
	LogFormat                  string  `env:"LOG_FORMAT" validate:"required,oneof=human json text"`
	LogLevel                   string  `env:"LOG_LEVEL" validate:"required,oneof=debug info warning error"`
	DatabaseURL                string  `env:"DATABASE_URL" validate:"required"`
	DatabaseURLFile            *string `env:"DATABASE_URL_FILE,file"`
	DatabaseMaxConns           int     `env:"DATABASE_MAX_CONNS" validate:"min=1"`
	DatabaseMinConns           int     `env:"DATABASE_MIN_CONNS" validate:"min=0,ltefield=DatabaseMaxConns"`
	DatabaseConnectionLifetime int     `env:"DATABASE_CONNECTION_LIFETIME" validate:"gt=0"`
	RunMigrations              bool    `env:"RUN_MIGRATIONS"`
	SiteDataFile               string  `env:"SITE_DATA_FILE" validate:"omitempty,file"`
	TruncateLength             int     `env:"TRUNCATE_LENGTH" validate:"min=0"`
	TruncateSuffix             string  `env:"TRUNCATE_SUFFIX"`
	YouTubeEmbedURL            string  `env:"YOUTUBE_EMBED_URL" validate:"required,http_url"`
	VimeoPlayerURL             string  `env:"VIMEO_PLAYER_URL" validate:"required,http_url"`
	PosterIDLength             int     `env:"POSTER_ID_LENGTH" validate:"min=1,max=64"`
	Timezone                   string  `env:"TIMEZONE" validate:"required,timezone"`
	MonthYearLabelLayout       string  `env:"MONTH_YEAR_LABEL_LAYOUT" validate:"required"`
	MonthYearValueLayout       string  `env:"MONTH_YEAR_VALUE_LAYOUT" validate:"required"`
	TermAliasPrefix            string  `env:"TERM_ALIAS_PREFIX" validate:"required,startswith=/"`
	TermCache                  bool    `env:"TERM_CACHE"`
	MetricsTextfile            string  `env:"METRICS_TEXTFILE" validate:"omitempty,filepath"`
}

// NewOptions returns Options with default values.
func NewOptions() *Options {
	return &Options{
		env: EnvOptions{
			LogFile:                    "stderr",
			LogFormat:                  "text",
			LogLevel:                   "info",
			DatabaseURL:                defaultDatabaseURL,
			DatabaseMaxConns:           4,
			DatabaseMinConns:           0,
			DatabaseConnectionLifetime: 60,
			TruncateLength:             100,
			TruncateSuffix:             "...",
			YouTubeEmbedURL:            defaultYouTubeURL,
			VimeoPlayerURL:             defaultVimeoURL,
			PosterIDLength:             20,
			Timezone:                   "UTC",
			MonthYearLabelLayout:       "January 2006",
			MonthYearValueLayout:       "2006-01",
			TermAliasPrefix:            "/taxonomy/term/",
			TermCache:                  true,
		},
	}
}

func (o *Options) init() (err error) {
	o.applyFileStrings()
	if err := o.validate(); err != nil {
		return err
	}

	o.youtubeURL, err = parsePlayerURL("YOUTUBE_EMBED_URL", o.env.YouTubeEmbedURL)
	if err != nil {
		return err
	}
	o.vimeoURL, err = parsePlayerURL("VIMEO_PLAYER_URL", o.env.VimeoPlayerURL)
	return err
}

func (o *Options) validate() error {
	if err := Validator().Struct(&o.env); err != nil {
		return fmt.Errorf("config: failed validate: %w", err)
	}

	if o.env.MonthYearLabelLayout == o.env.MonthYearValueLayout {
		return errors.New(
			"config: MONTH_YEAR_LABEL_LAYOUT and MONTH_YEAR_VALUE_LAYOUT are the same")
	}
	return nil
}

func (o *Options) applyFileStrings() {
	opts := []struct {
		From *string
		To   *string
	}{
		{o.env.DatabaseURLFile, &o.env.DatabaseURL},
	}
	for _, opt := range opts {
		if opt.From != nil {
			*opt.To = strings.TrimSpace(*opt.From)
		}
	}
}

// parsePlayerURL parses base URL of a video player, which always ends with a
// slash.
func parsePlayerURL(name, value string) (*url.URL, error) {
	if !strings.HasSuffix(value, "/") {
		value += "/"
	}

	u, err := url.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("config: invalid %s: %w", name, err)
	}
	return u, nil
}

func (o *Options) LogFile() string { return o.env.LogFile }

// LogDateTime returns true if the date/time should be displayed in log
// messages.
func (o *Options) LogDateTime() bool { return o.env.LogDateTime }

// LogFormat returns the log format.
func (o *Options) LogFormat() string { return o.env.LogFormat }

// LogLevel returns the log level.
func (o *Options) LogLevel() string { return o.env.LogLevel }

// SetLogLevel sets the log level.
func (o *Options) SetLogLevel(level string) { o.env.LogLevel = level }

// DatabaseURL returns the database URL.
func (o *Options) DatabaseURL() string { return o.env.DatabaseURL }

// IsDefaultDatabaseURL returns true if the default database URL is used.
func (o *Options) IsDefaultDatabaseURL() bool {
	return o.env.DatabaseURL == defaultDatabaseURL
}

// DatabaseMaxConns returns the maximum number of database connections.
func (o *Options) DatabaseMaxConns() int { return o.env.DatabaseMaxConns }

// DatabaseMinConns returns the minimum number of database connections.
func (o *Options) DatabaseMinConns() int { return o.env.DatabaseMinConns }

// DatabaseConnectionLifetime returns the maximum amount of time a connection
// may be reused.
func (o *Options) DatabaseConnectionLifetime() time.Duration {
	return time.Duration(o.env.DatabaseConnectionLifetime) * time.Minute
}

// RunMigrations returns true if the environment variable RUN_MIGRATIONS is
// not empty.
func (o *Options) RunMigrations() bool { return o.env.RunMigrations }

// SiteDataFile returns path of YAML site data. When it's set site content
// comes from this file instead of the database.
func (o *Options) SiteDataFile() string { return o.env.SiteDataFile }

func (o *Options) SetSiteDataFile(filename string) {
	o.env.SiteDataFile = filename
}

func (o *Options) TruncateLength() int { return o.env.TruncateLength }

func (o *Options) TruncateSuffix() string { return o.env.TruncateSuffix }

func (o *Options) YouTubeEmbedURL() *url.URL { return o.youtubeURL }

func (o *Options) VimeoPlayerURL() *url.URL { return o.vimeoURL }

func (o *Options) PosterIDLength() int { return o.env.PosterIDLength }

func (o *Options) Timezone() string { return o.env.Timezone }

func (o *Options) MonthYearLabelLayout() string {
	return o.env.MonthYearLabelLayout
}

func (o *Options) MonthYearValueLayout() string {
	return o.env.MonthYearValueLayout
}

func (o *Options) TermAliasPrefix() string { return o.env.TermAliasPrefix }

func (o *Options) TermCache() bool { return o.env.TermCache }

// MetricsTextfile returns path of file, where metrics are written on exit, in
// the format of node exporter textfile collector.
func (o *Options) MetricsTextfile() string { return o.env.MetricsTextfile }

// SortedOptions returns options as a list of key value pairs, sorted by keys.
func (o *Options) SortedOptions(redactSecret bool) []Option {
	keyValues := map[string]any{
		"DATABASE_CONNECTION_LIFETIME": o.env.DatabaseConnectionLifetime,
		"DATABASE_MAX_CONNS":           o.DatabaseMaxConns(),
		"DATABASE_MIN_CONNS":           o.DatabaseMinConns(),
		"DATABASE_URL":                 secretValue(o.DatabaseURL(), redactSecret),
		"LOG_DATE_TIME":                o.LogDateTime(),
		"LOG_FILE":                     o.LogFile(),
		"LOG_FORMAT":                   o.LogFormat(),
		"LOG_LEVEL":                    o.LogLevel(),
		"METRICS_TEXTFILE":             o.MetricsTextfile(),
		"MONTH_YEAR_LABEL_LAYOUT":      o.MonthYearLabelLayout(),
		"MONTH_YEAR_VALUE_LAYOUT":      o.MonthYearValueLayout(),
		"POSTER_ID_LENGTH":             o.PosterIDLength(),
		"RUN_MIGRATIONS":               o.RunMigrations(),
		"SITE_DATA_FILE":               o.SiteDataFile(),
		"TERM_ALIAS_PREFIX":            o.TermAliasPrefix(),
		"TERM_CACHE":                   o.TermCache(),
		"TIMEZONE":                     o.Timezone(),
		"TRUNCATE_LENGTH":              o.TruncateLength(),
		"TRUNCATE_SUFFIX":              o.TruncateSuffix(),
		"VIMEO_PLAYER_URL":             o.env.VimeoPlayerURL,
		"YOUTUBE_EMBED_URL":            o.env.YouTubeEmbedURL,
	}

	sortedKeys := slices.Sorted(maps.Keys(keyValues))
	sortedOptions := make([]Option, len(sortedKeys))
	for i, key := range sortedKeys {
		sortedOptions[i] = Option{Key: key, Value: keyValues[key]}
	}
	return sortedOptions
}

func (o *Options) String() string {
	var builder strings.Builder
	for _, option := range o.SortedOptions(false) {
		fmt.Fprintf(&builder, "%s=%v\n", option.Key, option.Value)
	}
	return builder.String()
}

func secretValue(value string, redactSecret bool) string {
	if redactSecret && value != "" {
		return "<secret>"
	}
	return value
}

// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli // import "github.com/citizencage/drupal-8-twig-helpers/internal/cli"

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/citizencage/drupal-8-twig-helpers/internal/archive"
	"github.com/citizencage/drupal-8-twig-helpers/internal/cache"
	"github.com/citizencage/drupal-8-twig-helpers/internal/config"
	"github.com/citizencage/drupal-8-twig-helpers/internal/logging"
	"github.com/citizencage/drupal-8-twig-helpers/internal/metric"
	"github.com/citizencage/drupal-8-twig-helpers/internal/sitedata"
	"github.com/citizencage/drupal-8-twig-helpers/internal/storage"
	"github.com/citizencage/drupal-8-twig-helpers/internal/taxonomy"
	"github.com/citizencage/drupal-8-twig-helpers/internal/template"
	"github.com/citizencage/drupal-8-twig-helpers/internal/timezone"
	"github.com/citizencage/drupal-8-twig-helpers/internal/video"
)

// source is where site content comes from: the database or YAML site data.
type source struct {
	terms   taxonomy.TermRepository
	aliases taxonomy.AliasResolver
	nodes   archive.NodeQuery

	store    *storage.Storage
	siteData *sitedata.Store
	cache    *cache.Terms
}

// withSource opens the configured site content and calls fn with it. Metrics
// are written after fn returns, if METRICS_TEXTFILE is set.
func withSource(ctx context.Context,
	fn func(ctx context.Context, src *source) error,
) error {
	ctx, trace := storage.WithTraceStat(ctx)
	start := time.Now()

	if filename := config.Opts.SiteDataFile(); filename != "" {
		siteData, err := sitedata.Load(filename)
		if err != nil {
			return err
		}
		logging.FromContext(ctx).Debug("Loaded site data",
			slog.String("filename", filename))
		return newSource(siteData, siteData, siteData).
			withSiteData(siteData).run(ctx, fn)
	}

	return withStorage(ctx,
		func(ctx context.Context, store *storage.Storage) error {
			if err := checkSchema(ctx, store); err != nil {
				return err
			}
			err := newSource(store, store, store).withStorage(store).run(ctx, fn)
			logging.FromContext(ctx).Debug("database queries",
				slog.Int64("count", trace.Queries()),
				slog.Duration("elapsed", trace.Elapsed()),
				slog.Duration("total", time.Since(start)))
			return err
		})
}

func newSource(terms taxonomy.TermRepository, aliases taxonomy.AliasResolver,
	nodes archive.NodeQuery,
) *source {
	src := &source{terms: terms, aliases: aliases, nodes: nodes}
	if config.Opts.TermCache() {
		src.cache = cache.NewTerms(terms)
		src.terms = src.cache
	}
	return src
}

func (self *source) withStorage(store *storage.Storage) *source {
	self.store = store
	return self
}

func (self *source) withSiteData(siteData *sitedata.Store) *source {
	self.siteData = siteData
	return self
}

func (self *source) run(ctx context.Context,
	fn func(ctx context.Context, src *source) error,
) error {
	err := fn(ctx, self)
	if filename := config.Opts.MetricsTextfile(); filename != "" {
		err = errors.Join(err, self.writeMetrics(ctx, filename))
	}
	return err
}

func (self *source) writeMetrics(ctx context.Context, filename string) error {
	var collectors []prometheus.Collector
	if self.store != nil {
		if err := self.store.Metrics(ctx, true); err != nil {
			return err
		}
		collectors = self.store.Collectors()
	}

	if self.cache != nil {
		metric.SetTermCacheStats(self.cache.Stats())
	}

	r, err := metric.NewRegistry(collectors...)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Debug("Write metrics",
		slog.String("filename", filename))
	return metric.WriteTextfile(filename, r)
}

// helpers returns template helpers configured by config.Opts.
func (self *source) helpers() *template.Helpers {
	opts := config.Opts
	return &template.Helpers{
		Taxonomy: self.taxonomy(),
		Archive: archive.NewFilter(self.nodes,
			timezone.NewFormatter(opts.Timezone())).
			WithLayouts(opts.MonthYearLabelLayout(), opts.MonthYearValueLayout()),
		Video:          newEmbedder(),
		TruncateLength: opts.TruncateLength(),
		TruncateSuffix: opts.TruncateSuffix(),
	}
}

func (self *source) taxonomy() *taxonomy.Helper {
	return taxonomy.NewHelper(self.terms, self.aliases).
		WithSystemPrefix(config.Opts.TermAliasPrefix())
}

func newEmbedder() *video.Embedder {
	opts := config.Opts
	return video.New(
		video.WithYouTubeURL(opts.YouTubeEmbedURL()),
		video.WithVimeoURL(opts.VimeoPlayerURL()),
		video.WithPosterIDLength(opts.PosterIDLength()))
}

func withStorage(ctx context.Context,
	fn func(ctx context.Context, store *storage.Storage) error,
) error {
	store, err := makeStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close(ctx)
	return fn(ctx, store)
}

func makeStorage(ctx context.Context) (*storage.Storage, error) {
	if config.Opts.IsDefaultDatabaseURL() {
		logging.FromContext(ctx).Info("The default value for DATABASE_URL is used")
	}

	store, err := storage.New(ctx,
		config.Opts.DatabaseURL(),
		config.Opts.DatabaseMaxConns(),
		config.Opts.DatabaseMinConns(),
		config.Opts.DatabaseConnectionLifetime())
	if err != nil {
		return nil, err
	}

	if err := store.Ping(ctx); err != nil {
		store.Close(ctx)
		return nil, err
	}
	return store, nil
}

func checkSchema(ctx context.Context, store *storage.Storage) error {
	if config.Opts.RunMigrations() {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
	} else if err := store.SchemaUpToDate(ctx); err != nil {
		return err
	}

	tz := config.Opts.Timezone()
	if ok, err := store.TimezoneExists(ctx, tz); err != nil {
		return err
	} else if !ok {
		logging.FromContext(ctx).Warn("Database doesn't know TIMEZONE",
			slog.String("timezone", tz))
	}
	return nil
}

// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package template // import "github.com/citizencage/drupal-8-twig-helpers/internal/template"

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	"github.com/citizencage/drupal-8-twig-helpers/internal/archive"
	"github.com/citizencage/drupal-8-twig-helpers/internal/crypto"
	"github.com/citizencage/drupal-8-twig-helpers/internal/format"
	"github.com/citizencage/drupal-8-twig-helpers/internal/logging"
	"github.com/citizencage/drupal-8-twig-helpers/internal/metric"
	"github.com/citizencage/drupal-8-twig-helpers/internal/model"
	"github.com/citizencage/drupal-8-twig-helpers/internal/sanitizer"
	"github.com/citizencage/drupal-8-twig-helpers/internal/taxonomy"
	"github.com/citizencage/drupal-8-twig-helpers/internal/video"
)

// Helpers are dependencies of template functions.
type Helpers struct {
	Taxonomy *taxonomy.Helper
	Archive  *archive.Filter
	Video    *video.Embedder

	TruncateLength int
	TruncateSuffix string
}

type funcMap struct {
	h *Helpers
}

// Map returns template functions, which use ctx for lookups.
//
// Functions named like the twig filters of the Drupal theme return safe HTML.
func (f *funcMap) Map(ctx context.Context) template.FuncMap {
	return template.FuncMap{
		"truncateText": func(args ...any) (template.HTML, error) {
			s, err := f.truncateText(args...)
			return template.HTML(s), f.count("truncateText", err) //nolint:gosec // truncated markup
		},
		"formatPhone": func(v any) (string, error) {
			s, err := cast.ToStringE(v)
			return format.Phone(s), f.count("formatPhone", err)
		},
		"videoEmbed": func(source string, v any) (template.HTML, error) {
			u, err := cast.ToStringE(v)
			if err != nil {
				return "", f.count("videoEmbed", err)
			}
			s, err := f.h.Video.Embed(u, source)
			return template.HTML(s), f.count("videoEmbed", err) //nolint:gosec // rendered by html/template
		},
		"videoEmbedWithPoster": func(poster, source string, v any,
		) (template.HTML, error) {
			u, err := cast.ToStringE(v)
			if err != nil {
				return "", f.count("videoEmbedWithPoster", err)
			}
			s, err := f.h.Video.EmbedWithPoster(u, poster, source)
			return template.HTML(s), f.count("videoEmbedWithPoster", err) //nolint:gosec // rendered by html/template
		},
		"commaSeparatedTerms": func(args ...any) (template.HTML, error) {
			s, err := f.commaSeparatedTerms(ctx, args...)
			return template.HTML(s), f.count("commaSeparatedTerms", err) //nolint:gosec // names escaped
		},
		"generateTaxonomyTerms": func(vocabulary string, listType ...string,
		) (template.HTML, error) {
			s, err := f.h.Taxonomy.GenerateTaxonomyTerms(ctx, vocabulary,
				firstOr(listType, ""))
			return template.HTML(s), f.count("generateTaxonomyTerms", err) //nolint:gosec // names escaped
		},
		"generateMonthYearNodeFilter": func(nodeType string, listType ...string,
		) (template.HTML, error) {
			s, err := f.h.Archive.GenerateMonthYearNodeFilter(ctx, nodeType,
				firstOr(listType, ""))
			return template.HTML(s), f.count("generateMonthYearNodeFilter", err) //nolint:gosec // labels escaped
		},
		"getTaxonomyTermName": func(tid any) (string, error) {
			id, err := cast.ToInt64E(tid)
			if err != nil {
				return "", f.count("getTaxonomyTermName", err)
			}
			s, err := f.h.Taxonomy.TermName(ctx, id)
			return s, f.count("getTaxonomyTermName", err)
		},
		"getTaxonomyTermDescription": func(tid any) (template.HTML, error) {
			id, err := cast.ToInt64E(tid)
			if err != nil {
				return "", f.count("getTaxonomyTermDescription", err)
			}
			s, err := f.h.Taxonomy.TermDescription(ctx, id)
			// Descriptions are formatted text, edited by site editors.
			return template.HTML(s), f.count("getTaxonomyTermDescription", err) //nolint:gosec // trusted content
		},
		"customizeTermAlias": func(tid any, replacement string) (string, error) {
			id, err := cast.ToInt64E(tid)
			if err != nil {
				return "", f.count("customizeTermAlias", err)
			}
			s, err := f.h.Taxonomy.CustomizeTermAlias(ctx, id, replacement)
			return s, f.count("customizeTermAlias", err)
		},
		"getTaxonomyAliasFromTerm": func(tid any) (string, error) {
			id, err := cast.ToInt64E(tid)
			if err != nil {
				return "", f.count("getTaxonomyAliasFromTerm", err)
			}
			s, err := f.h.Taxonomy.TaxonomyAliasFromTerm(ctx, id)
			return s, f.count("getTaxonomyAliasFromTerm", err)
		},
		"getTaxonomyTermFromAlias": func(alias string) (*model.Term, error) {
			t, err := f.h.Taxonomy.TaxonomyTermFromAlias(ctx, alias)
			return t, f.count("getTaxonomyTermFromAlias", err)
		},
		"getTidByName": func(name string, vocabulary ...string) (int64, error) {
			tid, err := f.h.Taxonomy.TidByName(ctx, name, firstOr(vocabulary, ""))
			return tid, f.count("getTidByName", err)
		},
		"randHash": func(length ...int) string {
			f.count("randHash", nil)
			return crypto.RandHash(firstOr(length, crypto.DefaultHashLength))
		},
		"stripTags": func(v any) (string, error) {
			s, err := cast.ToStringE(v)
			if err != nil {
				return "", fmt.Errorf("template: stripTags: %w", err)
			}
			return sanitizer.StripTags(s), nil
		},
		"removeNonNumeric":   sanitizer.RemoveNonNumeric,
		"removeInvalidChars": sanitizer.RemoveInvalidChars,
		"sanitizeArrayVals":  sanitizer.SanitizeArrayVals,
		"inArrayR": func(needle any, haystack []any, strict ...bool) bool {
			return sanitizer.InArrayR(needle, haystack, firstOr(strict, false))
		},
	}
}

func (f *funcMap) count(name string, err error) error {
	metric.FuncCalls.WithLabelValues(name, metric.Status(err)).Inc()
	if err != nil {
		return fmt.Errorf("template: %s: %w", name, err)
	}
	return nil
}

// truncateText accepts optional length, suffix and exact cut flag, in this
// order, and the text last, so it works at the end of a pipeline:
//
//	{{ .body | truncateText 100 "..." }}
func (f *funcMap) truncateText(args ...any) (string, error) {
	text, args, err := subject(args)
	if err != nil {
		return "", err
	} else if len(args) > 3 {
		return "", fmt.Errorf("too many arguments: %d", len(args)+1)
	}

	length := f.h.TruncateLength
	opts := []sanitizer.TruncateOption{sanitizer.WithSuffix(f.h.TruncateSuffix)}
	for i, arg := range args {
		switch i {
		case 0:
			n, err := cast.ToIntE(arg)
			if err != nil {
				return "", fmt.Errorf("length: %w", err)
			}
			length = n
		case 1:
			suffix, err := cast.ToStringE(arg)
			if err != nil {
				return "", fmt.Errorf("suffix: %w", err)
			}
			opts = append(opts, sanitizer.WithSuffix(suffix))
		case 2:
			exact, err := cast.ToBoolE(arg)
			if err != nil {
				return "", fmt.Errorf("exact: %w", err)
			}
			opts = append(opts, sanitizer.WithExactCut(exact))
		}
	}

	s := sanitizer.TruncateHTML(text, length, opts...)
	if s == text {
		metric.TruncateCalls.WithLabelValues(metric.Unchanged).Inc()
	} else {
		metric.TruncateCalls.WithLabelValues(metric.Truncated).Inc()
	}
	return s, nil
}

// subject splits args into the piped value, converted to string, and
// arguments before it.
func subject(args []any) (string, []any, error) {
	if len(args) == 0 {
		return "", nil, errors.New("missing text")
	}
	last := len(args) - 1
	s, err := cast.ToStringE(args[last])
	if err != nil {
		return "", nil, fmt.Errorf("text: %w", err)
	}
	return s, args[:last], nil
}

// commaSeparatedTerms accepts optional tag and class, and term references
// last:
//
//	{{ .field_tags | commaSeparatedTerms "span" "tag" }}
func (f *funcMap) commaSeparatedTerms(ctx context.Context, args ...any,
) (string, error) {
	if len(args) == 0 {
		return "", errors.New("missing term references")
	} else if len(args) > 3 {
		return "", fmt.Errorf("too many arguments: %d", len(args))
	}

	v := args[len(args)-1]
	refs, err := termReferences(v)
	if err != nil {
		logging.FromContext(ctx).Debug("template: unexpected term references",
			slog.Any("refs", v), slog.Any("error", err))
		return "", err
	}

	markup := make([]string, 2)
	for i, arg := range args[:len(args)-1] {
		s, err := cast.ToStringE(arg)
		if err != nil {
			return "", fmt.Errorf("argument %d: %w", i+1, err)
		}
		markup[i] = s
	}
	return f.h.Taxonomy.CommaSeparatedTerms(ctx, refs, markup[0], markup[1])
}

// termReferences converts field values into term references. Values are a
// list of ids or a list of maps with "target_id", like entity reference
// fields.
func termReferences(v any) ([]model.TermReference, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case []model.TermReference:
		return v, nil
	case []int64:
		return model.TermReferences(v...), nil
	case []int:
		refs := make([]model.TermReference, len(v))
		for i, id := range v {
			refs[i].TargetID = int64(id)
		}
		return refs, nil
	}

	items, err := cast.ToSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("term references: %w", err)
	}

	refs := make([]model.TermReference, len(items))
	for i, item := range items {
		if id, err := cast.ToInt64E(item); err == nil {
			refs[i].TargetID = id
			continue
		}

		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &refs[i],
			TagName:          "json",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, fmt.Errorf("term reference decoder: %w", err)
		} else if err := dec.Decode(item); err != nil {
			return nil, fmt.Errorf("term reference #%d: %w", i, err)
		}
	}
	return refs, nil
}

func firstOr[T any](values []T, def T) T {
	if len(values) > 0 {
		return values[0]
	}
	return def
}

// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package archive // import "github.com/citizencage/drupal-8-twig-helpers/internal/archive"

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/citizencage/drupal-8-twig-helpers/internal/logging"
	"github.com/citizencage/drupal-8-twig-helpers/internal/model"
)

const (
	DefaultLabelLayout = "January 2006"
	DefaultValueLayout = "2006-01"

	ListOptions = "options"
)

// NodeQuery loads published nodes of a content type, oldest first.
type NodeQuery interface {
	PublishedNodes(ctx context.Context, nodeType string) ([]model.Node, error)
}

type DateFormatter interface {
	Format(t time.Time, layout string) string
}

// Filter builds month/year archive filters of published nodes.
type Filter struct {
	nodes NodeQuery
	dates DateFormatter

	labelLayout string
	valueLayout string
}

func NewFilter(nodes NodeQuery, dates DateFormatter) *Filter {
	return &Filter{
		nodes:       nodes,
		dates:       dates,
		labelLayout: DefaultLabelLayout,
		valueLayout: DefaultValueLayout,
	}
}

// WithLayouts changes time layouts of labels and values. Empty layouts keep
// defaults.
func (self *Filter) WithLayouts(label, value string) *Filter {
	if label != "" {
		self.labelLayout = label
	}
	if value != "" {
		self.valueLayout = value
	}
	return self
}

// MonthYear returns distinct months of published nodes of the type, newest
// first. Months are distinct by their label.
func (self *Filter) MonthYear(ctx context.Context, nodeType string,
) ([]model.MonthYear, error) {
	nodes, err := self.nodes.PublishedNodes(ctx, nodeType)
	if err != nil {
		return nil, fmt.Errorf("archive: published nodes of %q: %w", nodeType, err)
	}

	months := make([]model.MonthYear, 0, len(nodes))
	seen := make(map[string]struct{}, len(nodes))
	for i := range nodes {
		created := nodes[i].CreatedAt
		label := self.dates.Format(created, self.labelLayout)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		months = append(months, model.MonthYear{
			Value: self.dates.Format(created, self.valueLayout),
			Label: label,
		})
	}
	slices.Reverse(months)

	logging.FromContext(ctx).Debug("archive: collected months",
		slog.String("node_type", nodeType),
		slog.Int("nodes", len(nodes)),
		slog.Int("months", len(months)))
	return months, nil
}

// GenerateMonthYearNodeFilter renders months of MonthYear as <option>
// elements for ListOptions or empty listType, or as <li> elements.
func (self *Filter) GenerateMonthYearNodeFilter(ctx context.Context,
	nodeType, listType string,
) (string, error) {
	months, err := self.MonthYear(ctx, nodeType)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, m := range months {
		label := html.EscapeString(m.Label)
		if listType == "" || listType == ListOptions {
			b.WriteString(`<option value="` + html.EscapeString(m.Value) + `">` +
				label + "</option>")
		} else {
			b.WriteString("<li>" + label + "</li>")
		}
	}
	return b.String(), nil
}

// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package storage // import "github.com/citizencage/drupal-8-twig-helpers/internal/storage"

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/citizencage/drupal-8-twig-helpers/internal/model"
)

// PublishedNodes returns published nodes of the content type, oldest first.
func (s *Storage) PublishedNodes(ctx context.Context, nodeType string,
) ([]model.Node, error) {
	rows, _ := s.db.Query(ctx, `
SELECT id, type, title, published, created_at
  FROM nodes
 WHERE published AND type = $1
 ORDER BY created_at, id`, nodeType)

	nodes, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Node])
	if err != nil {
		return nil, fmt.Errorf("storage: unable fetch published %q nodes: %w",
			nodeType, err)
	}
	return nodes, nil
}

// CountNodes returns number of published nodes by content type.
func (s *Storage) CountNodes(ctx context.Context) (map[string]int, error) {
	rows, _ := s.db.Query(ctx, `
SELECT type, count(*) FROM nodes WHERE published GROUP BY type`)

	counts := make(map[string]int)
	var nodeType string
	var count int
	_, err := pgx.ForEachRow(rows, []any{&nodeType, &count}, func() error {
		counts[nodeType] = count
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: unable count nodes: %w", err)
	}
	return counts, nil
}

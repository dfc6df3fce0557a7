// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package storage // import "github.com/citizencage/drupal-8-twig-helpers/internal/storage"

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// AliasByPath returns the URL alias of the system path, or an empty string.
func (s *Storage) AliasByPath(ctx context.Context, path string) (string, error) {
	rows, _ := s.db.Query(ctx,
		`SELECT alias FROM path_aliases WHERE path = $1`, path)
	alias, err := pgx.CollectExactlyOneRow(rows, pgx.RowTo[string])
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("storage: unable fetch alias of %q: %w", path, err)
	}
	return alias, nil
}

// PathByAlias returns the system path of the URL alias, or an empty string.
func (s *Storage) PathByAlias(ctx context.Context, alias string) (string, error) {
	rows, _ := s.db.Query(ctx,
		`SELECT path FROM path_aliases WHERE alias = $1`, alias)
	path, err := pgx.CollectExactlyOneRow(rows, pgx.RowTo[string])
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("storage: unable fetch path of %q: %w", alias, err)
	}
	return path, nil
}

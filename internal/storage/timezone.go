// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package storage // import "github.com/citizencage/drupal-8-twig-helpers/internal/storage"

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TimezoneExists reports whether the database knows the time zone name.
func (s *Storage) TimezoneExists(ctx context.Context, name string) (bool,
	error,
) {
	rows, _ := s.db.Query(ctx,
		`SELECT EXISTS (SELECT FROM pg_timezone_names WHERE name = $1)`, name)
	exists, err := pgx.CollectExactlyOneRow(rows, pgx.RowTo[bool])
	if err != nil {
		return false, fmt.Errorf("storage: unable to check timezone %q: %w",
			name, err)
	}
	return exists, nil
}

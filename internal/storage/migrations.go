// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package storage // import "github.com/citizencage/drupal-8-twig-helpers/internal/storage"

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type migration struct {
	sql    string
	txFunc func(ctx context.Context, tx pgx.Tx) error
}

func sqlMigration(s string) migration { return migration{sql: s} }

func txMigration(fn func(ctx context.Context, tx pgx.Tx) error) migration {
	return migration{txFunc: fn}
}

func (self *migration) Do(ctx context.Context, tx pgx.Tx) error {
	if fn := self.txFunc; fn != nil {
		if err := fn(ctx, tx); err != nil {
			return fmt.Errorf("migrate by fn: %w", err)
		}
		return nil
	}

	if _, err := tx.Exec(ctx, self.sql); err != nil {
		return fmt.Errorf("migrate by SQL: %w", err)
	}
	return nil
}

var schemaVersion = len(migrations)

//go:embed schema.sql
var fullSchema string

// Order is important. Add new migrations at the end of the list.
//
//nolint:wrapcheck // Migrate() wraps errors
var migrations = []migration{
	sqlMigration(fullSchema),

	sqlMigration(`
CREATE INDEX nodes_published_type_created_idx
  ON nodes(type, created_at) WHERE published;`),

	txMigration(func(ctx context.Context, tx pgx.Tx) error {
		// Aliases are looked up by exact match with leading slash.
		_, err := tx.Exec(ctx, `
UPDATE path_aliases SET alias = '/' || alias WHERE alias NOT LIKE '/%'`)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
CREATE INDEX terms_vocabulary_name_idx ON terms(vocabulary, lower(name))`)
		return err
	}),

	sqlMigration(`
CREATE TYPE term_sort_key AS (
  weight int,
  name text COLLATE "C",
  id bigint
);`),
}

// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package storage // import "github.com/citizencage/drupal-8-twig-helpers/internal/storage"

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/citizencage/drupal-8-twig-helpers/internal/model"
)

const termColumns = `
  id, vocabulary, name, description, weight,
  COALESCE(parent_id, 0) AS parent_id`

// TermByID returns the term with the given id, or nil.
func (s *Storage) TermByID(ctx context.Context, id int64) (*model.Term, error) {
	rows, _ := s.db.Query(ctx, `
SELECT`+termColumns+`, 0 AS depth
  FROM terms
 WHERE id = $1`, id)

	term, err := pgx.CollectExactlyOneRow(rows,
		pgx.RowToAddrOfStructByName[model.Term])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("storage: unable fetch term id=%d: %w", id, err)
	}
	return term, nil
}

// TermByName returns the first term, by id, with the given name, or nil.
// Names are matched case-insensitive. Empty vocabulary matches any
// vocabulary.
func (s *Storage) TermByName(ctx context.Context, name, vocabulary string,
) (*model.Term, error) {
	rows, _ := s.db.Query(ctx, `
SELECT`+termColumns+`, 0 AS depth
  FROM terms
 WHERE lower(name) = lower($1) AND ($2 = '' OR vocabulary = $2)
 ORDER BY id
 LIMIT 1`, name, vocabulary)

	term, err := pgx.CollectExactlyOneRow(rows,
		pgx.RowToAddrOfStructByName[model.Term])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("storage: unable fetch term by name %q: %w", name,
			err)
	}
	return term, nil
}

// TermTree returns all terms of the vocabulary, every parent before its
// children, siblings ordered by weight, name and id. Names are compared
// bytewise, lower cased.
func (s *Storage) TermTree(ctx context.Context, vocabulary string,
) ([]model.Term, error) {
	rows, _ := s.db.Query(ctx, `
WITH RECURSIVE tree AS (
  SELECT`+termColumns+`, 0 AS depth,
         ARRAY[ROW(weight, lower(name), id)::term_sort_key] AS sort_path
    FROM terms
   WHERE vocabulary = $1 AND parent_id IS NULL
  UNION ALL
  SELECT t.id, t.vocabulary, t.name, t.description, t.weight, t.parent_id,
         tree.depth + 1,
         tree.sort_path || ROW(t.weight, lower(t.name), t.id)::term_sort_key
    FROM terms t
    JOIN tree ON t.parent_id = tree.id
   WHERE t.vocabulary = $1
)
SELECT id, vocabulary, name, description, weight, parent_id, depth
  FROM tree
 ORDER BY sort_path`, vocabulary)

	terms, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Term])
	if err != nil {
		return nil, fmt.Errorf("storage: unable fetch terms of %q: %w",
			vocabulary, err)
	}
	return terms, nil
}

// CountTerms returns number of terms by vocabulary.
func (s *Storage) CountTerms(ctx context.Context) (map[string]int, error) {
	rows, _ := s.db.Query(ctx, `
SELECT vocabulary, count(*) FROM terms GROUP BY vocabulary`)

	counts := make(map[string]int)
	var vocabulary string
	var count int
	_, err := pgx.ForEachRow(rows, []any{&vocabulary, &count}, func() error {
		counts[vocabulary] = count
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: unable count terms: %w", err)
	}
	return counts, nil
}
